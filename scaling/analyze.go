// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"fmt"

	"golang.org/x/scalestat/timing"
)

// Options configures Analyze.
type Options struct {
	// TrustSummary makes Analyze use a supplied summary table as
	// the summary instead of the recomputed one. The supplied
	// table is still validated.
	TrustSummary bool

	// Tolerance is the relative tolerance for validating a
	// supplied summary. Zero means DefaultTolerance.
	Tolerance float64
}

// An Analysis holds every table derived from one Dataset.
type Analysis struct {
	Serial   []ConfigurationAverage
	Parallel []ConfigurationAverage

	// Summary is the speedup and efficiency of each parallel
	// configuration. A recomputed summary is in ascending key
	// order; a trusted supplied summary keeps its row order.
	Summary []SummaryRow

	Scalability []ScalabilityResult

	// Warnings lists problems that did not prevent analysis, such
	// as a supplied summary that disagrees with the timings. They
	// should be presented to the user along with the results.
	Warnings []error
}

// Analyze derives an Analysis from ds.
//
// The summary is recomputed from the raw timings. If ds carries a
// precomputed summary, it is cross-checked against the recomputed one
// and any disagreement is recorded in Warnings.
func Analyze(ds *timing.Dataset, opts Options) (*Analysis, error) {
	tol := opts.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	a := new(Analysis)
	var err error
	if a.Serial, err = AverageByConfiguration(ds.Serial, BySize); err != nil {
		return nil, fmt.Errorf("serial timings: %w", err)
	}
	if a.Parallel, err = AverageByConfiguration(ds.Parallel, BySizeAndProcesses); err != nil {
		return nil, fmt.Errorf("parallel timings: %w", err)
	}
	computed, err := ComputeSummary(a.Serial, a.Parallel)
	if err != nil {
		return nil, err
	}

	a.Summary = computed
	if ds.Summary != nil {
		a.Warnings = Validate(computed, ds.Summary, tol)
		if opts.TrustSummary {
			a.Summary = fromSummaryRecords(ds.Summary)
		}
	}

	if a.Scalability, err = Scalability(a.Summary); err != nil {
		return nil, err
	}
	return a, nil
}
