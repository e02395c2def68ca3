// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaling derives parallel-scalability metrics from raw
// benchmark timings.
//
// Repeated trials of a configuration are first reduced to their mean
// (AverageByConfiguration). Parallel means are then compared against
// the serial mean of the same matrix size to obtain speedup and
// efficiency (ComputeSummary), and efficiencies at the extreme process
// counts of each size give its scaling efficiency (Scalability).
//
// Analyze runs the whole pipeline over a timing.Dataset.
package scaling

import (
	"fmt"

	"golang.org/x/scalestat/timing"
)

// A Key identifies a configuration under test.
type Key struct {
	MatrixSize int
	Processes  int
}

// Less reports whether k sorts before o. Keys order by matrix size,
// then by process count.
func (k Key) Less(o Key) bool {
	if k.MatrixSize != o.MatrixSize {
		return k.MatrixSize < o.MatrixSize
	}
	return k.Processes < o.Processes
}

func (k Key) String() string {
	return fmt.Sprintf("matrix size %d, %d processes", k.MatrixSize, k.Processes)
}

// A ConfigurationAverage summarizes the repeated trials of one
// configuration.
type ConfigurationAverage struct {
	Key

	// Mean is the arithmetic mean execution time in seconds.
	Mean float64

	// StdDev is the sample standard deviation of the execution
	// times, or 0 if there was only one trial.
	StdDev float64

	// Trials is the number of records averaged.
	Trials int
}

// A SummaryRow gives the speedup and efficiency of one parallel
// configuration relative to the serial baseline of its matrix size.
type SummaryRow struct {
	Key
	Speedup    float64
	Efficiency float64
}

// A ScalabilityResult reports how efficiency degrades for one matrix
// size between its smallest and largest tested process counts.
type ScalabilityResult struct {
	MatrixSize   int
	MinProcesses int
	MaxProcesses int

	// ScalingEfficiency is efficiency at MaxProcesses divided by
	// efficiency at MinProcesses.
	ScalingEfficiency float64
}

// A MissingBaselineError reports a parallel configuration whose
// matrix size has no serial timing, so its speedup is undefined.
type MissingBaselineError struct {
	MatrixSize int
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("no serial baseline for matrix size %d", e.MatrixSize)
}

// A DegenerateTimingError reports a zero, negative or NaN timing,
// which indicates corrupt input.
type DegenerateTimingError struct {
	// What describes the offending quantity, such as a record or
	// a configuration mean.
	What  string
	Value float64
}

func (e *DegenerateTimingError) Error() string {
	return fmt.Sprintf("degenerate timing: %s is %g, must be positive", e.What, e.Value)
}

// An EmptyGroupError reports an attempt to average an empty set of
// trials.
type EmptyGroupError struct {
	// Group names what was being averaged.
	Group string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no timing records for %s", e.Group)
}

// fromSummaryRecords converts precomputed summary rows.
func fromSummaryRecords(recs []timing.SummaryRecord) []SummaryRow {
	rows := make([]SummaryRow, len(recs))
	for i, r := range recs {
		rows[i] = SummaryRow{Key{r.MatrixSize, r.Processes}, r.Speedup, r.Efficiency}
	}
	return rows
}
