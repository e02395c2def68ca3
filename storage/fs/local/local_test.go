// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/scalestat/storage/fs"
)

func TestNewWriter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lfs := NewFS(dir)

	if err := fs.WriteFile(ctx, lfs, "charts/a.png", []byte("png"), nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "charts", "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png" {
		t.Errorf("got %q, want %q", data, "png")
	}

	w, err := lfs.NewWriter(ctx, "aborted.txt", nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("partial"))
	if err := w.CloseWithError(errors.New("abort")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "charts" {
			t.Errorf("unexpected file %s left behind", e.Name())
		}
	}
}
