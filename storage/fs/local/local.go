// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface using local files.
// Metadata is not stored separately; the header of the file should
// contain all the relevant metadata.
package local

import (
	"os"
	"path/filepath"

	"golang.org/x/net/context"
	"golang.org/x/scalestat/storage/fs"
)

// impl is an fs.FS backed by local disk.
type impl struct {
	root string
}

// NewFS constructs an FS that writes to the provided directory.
func NewFS(root string) fs.FS {
	return &impl{root}
}

// NewWriter creates a file and assigns metadata as extended
// filesystem attributes, if supported. The file is written to a
// temporary name and renamed into place on Close, so a reader never
// sees a partial file.
func (fs *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	file := filepath.Join(fs.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(file), 0777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return nil, err
	}
	return &wrapper{f, file}, nil
}

type wrapper struct {
	*os.File
	dest string
}

// Close closes the file and moves it to its final name.
func (w *wrapper) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	if err := os.Chmod(w.File.Name(), 0666); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	return os.Rename(w.File.Name(), w.dest)
}

// CloseWithError closes the file and attempts to unlink it.
func (w *wrapper) CloseWithError(error) error {
	w.File.Close()
	return os.Remove(w.File.Name())
}
