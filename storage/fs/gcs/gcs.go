// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud Storage.
package gcs

import (
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/net/context"
	"golang.org/x/scalestat/storage/fs"
	"google.golang.org/api/option"
)

// impl is an fs.FS backed by Google Cloud Storage.
type impl struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewFS constructs an FS that writes to the provided bucket.
// Object names are prefixed with prefix, which may be empty.
func NewFS(ctx context.Context, bucketName, prefix string, opts ...option.ClientOption) (fs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName), prefix}, nil
}

func (fs *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := fs.bucket.Object(fs.prefix + name).NewWriter(ctx)
	w.Metadata = metadata
	w.ContentType = contentType(name)
	return &wrapper{w, cancel}, nil
}

// wrapper makes storage.Writer satisfy fs.Writer.
type wrapper struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *wrapper) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}

// CloseWithError aborts the upload; the object is not created.
func (w *wrapper) CloseWithError(error) error {
	w.cancel()
	w.Writer.Close()
	return nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
