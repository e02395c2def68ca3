// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats a scaling.Analysis for people.
//
// The text report has a fixed layout: a title, then the summary
// statistics, best performance metrics, performance by matrix size
// and scalability analysis sections, each introduced by a header and
// a separator line. Its output depends only on the analysis, so the
// same input always produces the same bytes.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/scalestat/scaling"
)

// DefaultTitle is the title line of the text report.
const DefaultTitle = "MPI MATRIX MULTIPLICATION PERFORMANCE REPORT"

// DefaultReportPath is where the text report is conventionally saved.
const DefaultReportPath = "results/performance_report.txt"

// ErrNoConfigurations is returned when an analysis has no summary
// rows, so there is no best configuration to report.
var ErrNoConfigurations = errors.New("report: no summary configurations")

// separator follows every section header.
var separator = strings.Repeat("-", 50)

// TextOptions configures WriteText.
type TextOptions struct {
	// Title is the report title. Empty means DefaultTitle.
	Title string

	// Path is the location the report is saved to, mentioned in
	// its last line. Empty means DefaultReportPath.
	Path string
}

// WriteText writes the text report for a to w.
func WriteText(w io.Writer, a *scaling.Analysis, opts TextOptions) error {
	if len(a.Summary) == 0 {
		return ErrNoConfigurations
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Path == "" {
		opts.Path = DefaultReportPath
	}

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "=== %s ===\n\n", opts.Title)

	section(b, "SUMMARY STATISTICS")
	fmt.Fprintf(b, "Matrix sizes tested: %s\n", intList(scaling.Sizes(a.Summary)))
	fmt.Fprintf(b, "Process counts tested: %s\n", intList(scaling.ProcessCounts(a.Summary)))
	fmt.Fprintf(b, "Total configurations: %d\n\n", len(a.Summary))

	section(b, "BEST PERFORMANCE METRICS")
	bs, _ := scaling.Best(a.Summary, scaling.Speedup)
	be, _ := scaling.Best(a.Summary, scaling.Efficiency)
	fmt.Fprintf(b, "Best Speedup: %.3fx\n", bs.Speedup)
	fmt.Fprintf(b, "  Configuration: Matrix size %d, %d processes\n\n", bs.MatrixSize, bs.Processes)
	fmt.Fprintf(b, "Best Efficiency: %.3f\n", be.Efficiency)
	fmt.Fprintf(b, "  Configuration: Matrix size %d, %d processes\n\n", be.MatrixSize, be.Processes)

	section(b, "PERFORMANCE BY MATRIX SIZE")
	for _, g := range bySize(a.Summary) {
		fmt.Fprintf(b, "\nMatrix Size %d:\n", g.size)
		for _, r := range g.rows {
			fmt.Fprintf(b, "  %d processes: %.3fx speedup, %.3f efficiency\n", r.Processes, r.Speedup, r.Efficiency)
		}
	}

	b.WriteString("\n")
	section(b, "SCALABILITY ANALYSIS")
	for _, s := range a.Scalability {
		fmt.Fprintf(b, "Matrix size %d: %.3f scaling efficiency\n", s.MatrixSize, s.ScalingEfficiency)
	}

	fmt.Fprintf(b, "\nReport generated and saved to: %s\n", opts.Path)
	return b.Flush()
}

func section(b *bufio.Writer, header string) {
	b.WriteString(header)
	b.WriteString(":\n")
	b.WriteString(separator)
	b.WriteString("\n")
}

func intList(xs []int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range xs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(x))
	}
	sb.WriteByte(']')
	return sb.String()
}

type sizeGroup struct {
	size int
	rows []scaling.SummaryRow
}

// bySize groups rows by matrix size. Both the groups and the rows
// within each group are in ascending order; rows with equal keys keep
// their input order.
func bySize(rows []scaling.SummaryRow) []sizeGroup {
	groups := make([]sizeGroup, 0)
	index := make(map[int]int)
	for _, size := range scaling.Sizes(rows) {
		index[size] = len(groups)
		groups = append(groups, sizeGroup{size: size})
	}
	for _, r := range rows {
		g := &groups[index[r.MatrixSize]]
		g.rows = append(g.rows, r)
	}
	for _, g := range groups {
		sortByProcesses(g.rows)
	}
	return groups
}

func sortByProcesses(rows []scaling.SummaryRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Processes < rows[j].Processes })
}
