// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader reads one timing table in CSV form.
//
// Its API is modeled on bufio.Scanner. The first row of the input is
// the header. Columns are located by name, so they may appear in any
// order, and columns the table kind does not use are ignored.
type Reader struct {
	c        *csv.Reader
	fileName string
	table    Table

	cols   map[string]int // column name -> field index
	line   int
	err    error
	record Record
	sum    SummaryRecord
}

// A SyntaxError represents a syntax error on a particular line of a
// timing table.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader for a table of kind table read from
// r. fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, table Table) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	c := csv.NewReader(r)
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true
	c.ReuseRecord = true
	return &Reader{c: c, fileName: fileName, table: table}
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// readHeader consumes the header row and maps column names to
// field indexes.
func (r *Reader) readHeader() error {
	fields, err := r.c.Read()
	if err == io.EOF {
		r.line = 1
		return r.newSyntaxError("missing header row")
	}
	if err != nil {
		return r.csvError(err)
	}
	r.line, _ = r.c.FieldPos(0)
	r.cols = make(map[string]int)
	for i, f := range fields {
		name := strings.ToLower(strings.TrimSpace(f))
		if _, ok := r.cols[name]; !ok {
			r.cols[name] = i
		}
	}
	for _, col := range r.table.Columns() {
		if _, ok := r.cols[col]; !ok {
			return r.newSyntaxError(fmt.Sprintf("%s table missing column %q", r.table, col))
		}
	}
	return nil
}

func (r *Reader) csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &SyntaxError{r.fileName, perr.Line, perr.Err.Error()}
	}
	return err
}

// Scan advances the reader to the next row and reports whether a row
// was read. If Scan reaches the end of the input or hits an error it
// returns false and the caller should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.cols == nil {
		if r.err = r.readHeader(); r.err != nil {
			return false
		}
	}

	fields, err := r.c.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = r.csvError(err)
		return false
	}
	r.line, _ = r.c.FieldPos(0)
	if r.err = r.parse(fields); r.err != nil {
		return false
	}
	return true
}

func (r *Reader) field(fields []string, col string) (string, error) {
	i := r.cols[col]
	if i >= len(fields) {
		return "", r.newSyntaxError(fmt.Sprintf("missing value for %s", col))
	}
	return strings.TrimSpace(fields[i]), nil
}

// positiveInt parses a column that must hold a positive integer.
// Values such as "512.0" are accepted because spreadsheet exports
// often write integers that way.
func (r *Reader) positiveInt(fields []string, col string) (int, error) {
	s, err := r.field(fields, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, r.newSyntaxError(fmt.Sprintf("invalid %s %q", col, s))
		}
		n = int(f)
	}
	if n <= 0 {
		return 0, r.newSyntaxError(fmt.Sprintf("%s must be positive, got %d", col, n))
	}
	return n, nil
}

func (r *Reader) float(fields []string, col string) (float64, error) {
	s, err := r.field(fields, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.newSyntaxError(fmt.Sprintf("invalid %s %q", col, s))
	}
	return v, nil
}

func (r *Reader) parse(fields []string) error {
	size, err := r.positiveInt(fields, ColMatrixSize)
	if err != nil {
		return err
	}
	procs := 1
	if r.table != SerialTable {
		if procs, err = r.positiveInt(fields, ColProcesses); err != nil {
			return err
		}
	}

	switch r.table {
	case SummaryTable:
		speedup, err := r.float(fields, ColSpeedup)
		if err != nil {
			return err
		}
		eff, err := r.float(fields, ColEfficiency)
		if err != nil {
			return err
		}
		r.sum = SummaryRecord{MatrixSize: size, Processes: procs, Speedup: speedup, Efficiency: eff}
	default:
		// The sign of the time is checked by the aggregator, which
		// reports it as a degenerate timing rather than bad syntax.
		t, err := r.float(fields, ColExecutionTime)
		if err != nil {
			return err
		}
		r.record = Record{MatrixSize: size, Processes: procs, ExecutionTime: t}
	}
	return nil
}

// Record returns the trial read by the last call to Scan. It is only
// meaningful for serial and parallel tables.
func (r *Reader) Record() Record {
	return r.record
}

// Summary returns the summary row read by the last call to Scan. It
// is only meaningful for summary tables.
func (r *Reader) Summary() SummaryRecord {
	return r.sum
}

// Err returns the first error encountered by Scan, if any. Reaching
// the end of the input is not an error.
func (r *Reader) Err() error {
	return r.err
}

// ReadRecords reads an entire serial or parallel table from r.
func ReadRecords(r io.Reader, fileName string, table Table) ([]Record, error) {
	var out []Record
	tr := NewReader(r, fileName, table)
	for tr.Scan() {
		out = append(out, tr.Record())
	}
	return out, tr.Err()
}

// ReadSummary reads an entire summary table from r.
func ReadSummary(r io.Reader, fileName string) ([]SummaryRecord, error) {
	var out []SummaryRecord
	tr := NewReader(r, fileName, SummaryTable)
	for tr.Scan() {
		out = append(out, tr.Summary())
	}
	return out, tr.Err()
}
