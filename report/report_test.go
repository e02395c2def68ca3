// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"golang.org/x/scalestat/internal/diff"
	"golang.org/x/scalestat/scaling"
	"golang.org/x/scalestat/timing"
)

func testAnalysis(t *testing.T) *scaling.Analysis {
	t.Helper()
	a := &scaling.Analysis{
		Parallel: []scaling.ConfigurationAverage{
			{Key: scaling.Key{MatrixSize: 512, Processes: 4}, Mean: 0.55, Trials: 2},
		},
		Summary: []scaling.SummaryRow{
			{Key: scaling.Key{MatrixSize: 256, Processes: 1}, Speedup: 1.0, Efficiency: 1.0},
			{Key: scaling.Key{MatrixSize: 512, Processes: 4}, Speedup: 2.0 / 0.55, Efficiency: 2.0 / 0.55 / 4},
			{Key: scaling.Key{MatrixSize: 512, Processes: 2}, Speedup: 1.9, Efficiency: 0.95},
			{Key: scaling.Key{MatrixSize: 1024, Processes: 8}, Speedup: 3.2, Efficiency: 0.4},
			{Key: scaling.Key{MatrixSize: 1024, Processes: 2}, Speedup: 1.7, Efficiency: 0.85},
		},
	}
	var err error
	if a.Scalability, err = scaling.Scalability(a.Summary); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestWriteText(t *testing.T) {
	want, err := os.ReadFile("testdata/basic.golden")
	if err != nil {
		t.Fatal(err)
	}
	var got bytes.Buffer
	if err := WriteText(&got, testAnalysis(t), TextOptions{}); err != nil {
		t.Fatal(err)
	}
	if d := diff.Diff("want", string(want), "got", got.String()); d != "" {
		t.Errorf("report differs from testdata/basic.golden:\n%s", d)
	}
}

func TestWriteTextIdempotent(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteText(&first, testAnalysis(t), TextOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(&second, testAnalysis(t), TextOptions{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("two runs differ:\n%s", diff.Diff("first", first.String(), "second", second.String()))
	}
}

func TestWriteTextOptions(t *testing.T) {
	var buf bytes.Buffer
	opts := TextOptions{Title: "SGEMM SCALING", Path: "out/report.txt"}
	if err := WriteText(&buf, testAnalysis(t), opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "=== SGEMM SCALING ===\n\n") {
		t.Errorf("report does not start with the custom title:\n%s", out)
	}
	if !strings.HasSuffix(out, "\nReport generated and saved to: out/report.txt\n") {
		t.Errorf("report does not end with the custom path:\n%s", out)
	}
}

func TestWriteTextNoScalability(t *testing.T) {
	a := &scaling.Analysis{
		Summary: []scaling.SummaryRow{{Key: scaling.Key{MatrixSize: 256, Processes: 1}, Speedup: 1, Efficiency: 1}},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, a, TextOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "SCALABILITY ANALYSIS:\n" + strings.Repeat("-", 50) + "\n\nReport generated"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("empty scalability section not rendered as expected:\n%s", buf.String())
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, &scaling.Analysis{}, TextOptions{}); !errors.Is(err, ErrNoConfigurations) {
		t.Errorf("got %v, want ErrNoConfigurations", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q for an empty analysis", buf.String())
	}
}

func TestWriteHTML(t *testing.T) {
	a := testAnalysis(t)
	a.Warnings = []error{errors.New("summary <mismatch>")}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, a, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>" + DefaultTitle + "</title>",
		"<h2>Summary statistics</h2>",
		"Matrix sizes tested: [256, 512, 1024]",
		"Best speedup: 3.636x (matrix size 512, 4 processes)",
		"<tr><td>512<td>4<td>0.5500<td>3.636<td>0.909",
		"<tr><td>1024<td>2<td>-<td>1.700<td>0.850",
		"<tr><td>1024<td>2 → 8<td>0.471",
		"summary &lt;mismatch&gt;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	a := testAnalysis(t)
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, a.Summary); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "matrix_size,processes,speedup,efficiency\n256,1,1,1\n") {
		t.Errorf("unexpected CSV:\n%s", buf.String())
	}
	back, err := timing.ReadSummary(&buf, "summary.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(a.Summary) {
		t.Fatalf("read back %d rows, want %d", len(back), len(a.Summary))
	}
	for i, r := range back {
		s := a.Summary[i]
		if r.MatrixSize != s.MatrixSize || r.Processes != s.Processes || r.Speedup != s.Speedup || r.Efficiency != s.Efficiency {
			t.Errorf("row %d: read back %+v, want %+v", i, r, s)
		}
	}
}

func TestWriteWarnings(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWarnings(&buf, []error{errors.New("a"), errors.New("b")}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "warning: a\nwarning: b\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
