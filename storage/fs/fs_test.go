// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fs

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMemFS(t *testing.T) {
	ctx := context.Background()
	fs := NewMemFS()
	if err := WriteFile(ctx, fs, "b/report.txt", []byte("hello\n"), map[string]string{"kind": "report"}); err != nil {
		t.Fatal(err)
	}
	w, err := fs.NewWriter(ctx, "a.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("png"))
	if got := fs.Files(); len(got) != 1 {
		t.Errorf("unclosed file is visible: %v", got)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err == nil {
		t.Errorf("second Close succeeded")
	}

	if got, want := fs.Files(), []string{"a.png", "b/report.txt"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
	data, meta, err := fs.ReadFile("b/report.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" || meta["kind"] != "report" {
		t.Errorf("ReadFile = %q, %v", data, meta)
	}

	w, _ = fs.NewWriter(ctx, "aborted.txt", nil)
	w.Write([]byte("partial"))
	w.CloseWithError(errors.New("abort"))
	if _, _, err := fs.ReadFile("aborted.txt"); err == nil {
		t.Errorf("aborted file was stored")
	}
}
