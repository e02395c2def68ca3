// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff reports differences between expected and actual text
// in golden-file tests.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Diff returns a human-readable description of the differences
// between want and got, labelled with their names. It uses the
// "diff" command when available and otherwise quotes both texts. The
// result is empty if and only if want == got.
func Diff(wantName, want, gotName, got string) string {
	if want == got {
		return ""
	}
	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	if _, err := exec.LookPath(cmd); err != nil {
		return fmt.Sprintf("diff command unavailable\n%s: %q\n%s: %q", wantName, want, gotName, got)
	}

	dir, err := os.MkdirTemp("", "scalestat-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	wantPath, gotPath := filepath.Join(dir, wantName), filepath.Join(dir, gotName)
	if err := os.WriteFile(wantPath, []byte(want), 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(gotPath, []byte(got), 0666); err != nil {
		return err.Error()
	}

	c := exec.Command(cmd, "-u", wantName, gotName)
	c.Dir = dir
	data, err := c.CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		// Ignore that failure as long as we get output.
		err = nil
	}
	if err != nil {
		data = append(data, err.Error()...)
	}
	if len(data) == 0 {
		// The texts differ but diff found nothing to show, for
		// example only in a missing final newline.
		return fmt.Sprintf("%s: %q\n%s: %q", wantName, want, gotName, got)
	}
	return string(data)
}
