// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timing reads raw matrix-multiplication benchmark timings.
//
// A benchmark run produces three tables: serial trials, parallel
// trials and (optionally) a precomputed speedup summary. Each table
// is a CSV file with a header row naming its columns.
package timing

import "fmt"

// A Record is one observed benchmark trial.
type Record struct {
	// MatrixSize is the dimension N of the N×N matrices multiplied.
	MatrixSize int

	// Processes is the number of processes the trial ran on.
	// Serial trials always have Processes == 1.
	Processes int

	// ExecutionTime is the wall-clock time of the trial in seconds.
	ExecutionTime float64
}

func (r Record) String() string {
	return fmt.Sprintf("matrix_size=%d processes=%d execution_time=%g", r.MatrixSize, r.Processes, r.ExecutionTime)
}

// A SummaryRecord is one row of a precomputed summary table.
type SummaryRecord struct {
	MatrixSize int
	Processes  int
	Speedup    float64
	Efficiency float64
}

// A Dataset holds every table of one benchmark run.
type Dataset struct {
	Serial   []Record
	Parallel []Record

	// Summary is the precomputed summary table, or nil if none
	// was loaded.
	Summary []SummaryRecord
}

// A Table identifies the kind of a timing table, which determines
// its required columns.
type Table int

const (
	SerialTable Table = iota
	ParallelTable
	SummaryTable
)

func (t Table) String() string {
	switch t {
	case SerialTable:
		return "serial"
	case ParallelTable:
		return "parallel"
	case SummaryTable:
		return "summary"
	}
	return fmt.Sprintf("Table(%d)", int(t))
}

// Column names used in timing tables.
const (
	ColMatrixSize    = "matrix_size"
	ColProcesses     = "processes"
	ColExecutionTime = "execution_time"
	ColSpeedup       = "speedup"
	ColEfficiency    = "efficiency"
)

// Columns returns the columns that must be present in a table of
// kind t, in canonical order.
func (t Table) Columns() []string {
	switch t {
	case SerialTable:
		return []string{ColMatrixSize, ColExecutionTime}
	case ParallelTable:
		return []string{ColMatrixSize, ColProcesses, ColExecutionTime}
	case SummaryTable:
		return []string{ColMatrixSize, ColProcesses, ColSpeedup, ColEfficiency}
	}
	return nil
}
