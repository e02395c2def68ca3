// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import "github.com/aclements/go-gg/generic/slice"

// A Metric selects a derived metric of a SummaryRow.
type Metric int

const (
	Speedup Metric = iota
	Efficiency
)

func (m Metric) String() string {
	if m == Efficiency {
		return "efficiency"
	}
	return "speedup"
}

// Value returns metric m of r.
func (m Metric) Value(r SummaryRow) float64 {
	if m == Efficiency {
		return r.Efficiency
	}
	return r.Speedup
}

// Best returns the row with the greatest value of metric m. If
// several rows share the greatest value, the first of them wins. ok
// is false if rows is empty.
func Best(rows []SummaryRow, m Metric) (best SummaryRow, ok bool) {
	if len(rows) == 0 {
		return SummaryRow{}, false
	}
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = m.Value(r)
	}
	return rows[slice.ArgMax(vals)], true
}

// Sizes returns the distinct matrix sizes of rows in ascending order.
func Sizes(rows []SummaryRow) []int {
	xs := make([]int, len(rows))
	for i, r := range rows {
		xs[i] = r.MatrixSize
	}
	return distinct(xs)
}

// ProcessCounts returns the distinct process counts of rows in
// ascending order.
func ProcessCounts(rows []SummaryRow) []int {
	xs := make([]int, len(rows))
	for i, r := range rows {
		xs[i] = r.Processes
	}
	return distinct(xs)
}

func distinct(xs []int) []int {
	out := slice.Nub(xs).([]int)
	slice.Sort(out)
	return out
}
