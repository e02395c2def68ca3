// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/scalestat/scaling"
	"golang.org/x/scalestat/timing"
)

// WriteSummaryCSV writes rows as a summary table that timing.ReadSummary
// can read back. Values are written with full precision.
func WriteSummaryCSV(w io.Writer, rows []scaling.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(timing.SummaryTable.Columns()); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.MatrixSize),
			strconv.Itoa(r.Processes),
			strconv.FormatFloat(r.Speedup, 'g', -1, 64),
			strconv.FormatFloat(r.Efficiency, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWarnings writes one line per warning, or nothing if there are
// none.
func WriteWarnings(w io.Writer, warnings []error) error {
	for _, warn := range warnings {
		if _, err := fmt.Fprintf(w, "warning: %v\n", warn); err != nil {
			return err
		}
	}
	return nil
}
