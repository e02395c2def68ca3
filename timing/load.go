// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timing

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sources names the files holding each table of a Dataset, relative
// to the root of the file system they are loaded from.
type Sources struct {
	Serial   string
	Parallel string

	// Summary is optional. If empty, no summary table is loaded.
	Summary string
}

// DefaultSources are the file names written by the benchmark step.
var DefaultSources = Sources{
	Serial:   "serial_results.csv",
	Parallel: "mpi_results.csv",
	Summary:  "benchmark_summary.csv",
}

// BenchmarkCommand is the upstream step that produces timing tables.
const BenchmarkCommand = "./scripts/run_benchmarks.sh"

// A DataNotFoundError reports that a required timing table is absent.
type DataNotFoundError struct {
	// Source is the kind of table that is missing.
	Source Table

	// Path is where the table was expected.
	Path string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s results %s; run %s first to generate results", e.Source, e.Path, BenchmarkCommand)
}

// Load reads the tables named by src from fsys.
//
// Every named table is checked for existence before any is parsed,
// so a missing table is reported as a *DataNotFoundError without
// reading the others. Load returns either a complete Dataset or an
// error, never a partial Dataset.
func Load(fsys fs.FS, src Sources) (*Dataset, error) {
	type want struct {
		table Table
		path  string
	}
	wants := []want{{SerialTable, src.Serial}, {ParallelTable, src.Parallel}}
	if src.Summary != "" {
		wants = append(wants, want{SummaryTable, src.Summary})
	}
	for _, w := range wants {
		if w.path == "" {
			return nil, &DataNotFoundError{w.table, w.path}
		}
		if _, err := fs.Stat(fsys, w.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &DataNotFoundError{w.table, w.path}
			}
			return nil, err
		}
	}

	ds := new(Dataset)
	var err error
	if ds.Serial, err = loadRecords(fsys, src.Serial, SerialTable); err != nil {
		return nil, err
	}
	if ds.Parallel, err = loadRecords(fsys, src.Parallel, ParallelTable); err != nil {
		return nil, err
	}
	if src.Summary != "" {
		f, err := fsys.Open(src.Summary)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if ds.Summary, err = ReadSummary(f, src.Summary); err != nil {
			return nil, err
		}
		if ds.Summary == nil {
			// Distinguish "loaded, but empty" from "not loaded".
			ds.Summary = []SummaryRecord{}
		}
	}
	return ds, nil
}

func loadRecords(fsys fs.FS, path string, table Table) ([]Record, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f, path, table)
}
