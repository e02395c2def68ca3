// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"fmt"
	"math"

	"golang.org/x/scalestat/timing"
)

// DefaultTolerance is the relative tolerance used when comparing a
// supplied summary with a recomputed one. Summary tables are usually
// written with a few significant digits, so it is much looser than
// floating-point error.
const DefaultTolerance = 1e-3

// A Discrepancy describes a precomputed summary row that disagrees
// with the summary recomputed from raw timings, or with itself.
// Discrepancies are warnings: they do not stop analysis.
type Discrepancy struct {
	Key Key

	// Field is the metric that disagrees: "speedup",
	// "efficiency", or "row" if the configuration is present on
	// only one side.
	Field string

	Supplied, Computed float64

	Msg string
}

func (d *Discrepancy) Error() string {
	if d.Msg != "" {
		return fmt.Sprintf("summary %s: %s", d.Key, d.Msg)
	}
	return fmt.Sprintf("summary %s: supplied %s %.6g, recomputed %.6g", d.Key, d.Field, d.Supplied, d.Computed)
}

// Close reports whether a and b agree within relative tolerance tol.
func Close(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= tol*scale
}

// Validate cross-checks a supplied summary table against computed.
//
// It reports supplied rows that are not internally consistent
// (efficiency × processes ≠ speedup), rows whose speedup or
// efficiency differ from the recomputed value, and configurations
// present on only one side. The result is nil if the tables agree.
func Validate(computed []SummaryRow, supplied []timing.SummaryRecord, tol float64) []error {
	var warnings []error
	want := make(map[Key]SummaryRow, len(computed))
	for _, r := range computed {
		want[r.Key] = r
	}
	seen := make(map[Key]bool, len(supplied))
	for _, s := range fromSummaryRecords(supplied) {
		seen[s.Key] = true
		if !Close(s.Efficiency*float64(s.Processes), s.Speedup, tol) {
			warnings = append(warnings, &Discrepancy{Key: s.Key, Field: "efficiency", Supplied: s.Efficiency, Computed: s.Speedup / float64(s.Processes),
				Msg: fmt.Sprintf("efficiency %.6g × %d processes does not match speedup %.6g", s.Efficiency, s.Processes, s.Speedup)})
		}
		c, ok := want[s.Key]
		if !ok {
			warnings = append(warnings, &Discrepancy{Key: s.Key, Field: "row", Msg: "no matching timings"})
			continue
		}
		if !Close(s.Speedup, c.Speedup, tol) {
			warnings = append(warnings, &Discrepancy{Key: s.Key, Field: "speedup", Supplied: s.Speedup, Computed: c.Speedup})
		}
		if !Close(s.Efficiency, c.Efficiency, tol) {
			warnings = append(warnings, &Discrepancy{Key: s.Key, Field: "efficiency", Supplied: s.Efficiency, Computed: c.Efficiency})
		}
	}
	for _, c := range computed {
		if !seen[c.Key] {
			warnings = append(warnings, &Discrepancy{Key: c.Key, Field: "row", Msg: "missing from supplied summary"})
		}
	}
	return warnings
}
