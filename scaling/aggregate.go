// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/scalestat/timing"
)

// A Grouping selects the key records are averaged by.
type Grouping int

const (
	// BySize groups records by matrix size alone. The resulting
	// averages have Processes == 1. This is the grouping for
	// serial trials.
	BySize Grouping = iota

	// BySizeAndProcesses groups records by matrix size and
	// process count. This is the grouping for parallel trials.
	BySizeAndProcesses
)

func (g Grouping) key(r timing.Record) Key {
	if g == BySize {
		return Key{r.MatrixSize, 1}
	}
	return Key{r.MatrixSize, r.Processes}
}

// AverageByConfiguration reduces records to one ConfigurationAverage
// per distinct key under grouping by, in ascending key order.
//
// Every record must have a positive execution time; otherwise
// AverageByConfiguration returns a *DegenerateTimingError. An empty
// record set is an *EmptyGroupError.
func AverageByConfiguration(records []timing.Record, by Grouping) ([]ConfigurationAverage, error) {
	if len(records) == 0 {
		return nil, &EmptyGroupError{"configuration averages"}
	}
	groups := make(map[Key][]float64)
	for _, r := range records {
		if !(r.ExecutionTime > 0) || math.IsInf(r.ExecutionTime, 0) {
			return nil, &DegenerateTimingError{"execution_time of record " + r.String(), r.ExecutionTime}
		}
		k := by.key(r)
		groups[k] = append(groups[k], r.ExecutionTime)
	}

	keys := make([]Key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]ConfigurationAverage, 0, len(keys))
	for _, k := range keys {
		avg, err := average(k, groups[k])
		if err != nil {
			return nil, err
		}
		out = append(out, avg)
	}
	return out, nil
}

func average(k Key, xs []float64) (ConfigurationAverage, error) {
	if len(xs) == 0 {
		return ConfigurationAverage{}, &EmptyGroupError{k.String()}
	}
	avg := ConfigurationAverage{Key: k, Mean: stats.Mean(xs), Trials: len(xs)}
	if len(xs) > 1 {
		avg.StdDev = stats.StdDev(xs)
	}
	return avg, nil
}

// ComputeSummary derives a SummaryRow for each parallel average from
// the serial average of the same matrix size. Rows are returned in
// the order of parallel.
//
// If a matrix size has no serial average, ComputeSummary returns a
// *MissingBaselineError.
func ComputeSummary(serial, parallel []ConfigurationAverage) ([]SummaryRow, error) {
	baseline := make(map[int]float64, len(serial))
	for _, s := range serial {
		if !(s.Mean > 0) {
			return nil, &DegenerateTimingError{fmt.Sprintf("serial mean time for matrix size %d", s.MatrixSize), s.Mean}
		}
		baseline[s.MatrixSize] = s.Mean
	}

	rows := make([]SummaryRow, 0, len(parallel))
	for _, p := range parallel {
		base, ok := baseline[p.MatrixSize]
		if !ok {
			return nil, &MissingBaselineError{p.MatrixSize}
		}
		if !(p.Mean > 0) {
			return nil, &DegenerateTimingError{"parallel mean time for " + p.Key.String(), p.Mean}
		}
		speedup := base / p.Mean
		rows = append(rows, SummaryRow{
			Key:        p.Key,
			Speedup:    speedup,
			Efficiency: speedup / float64(p.Processes),
		})
	}
	return rows, nil
}

// Scalability computes the scaling efficiency of each matrix size
// tested at two or more distinct process counts, in ascending order of
// matrix size. Sizes tested at a single process count are skipped.
//
// The result does not depend on the order of rows.
func Scalability(rows []SummaryRow) ([]ScalabilityResult, error) {
	bySize := make(map[int][]SummaryRow)
	for _, r := range rows {
		bySize[r.MatrixSize] = append(bySize[r.MatrixSize], r)
	}
	sizes := make([]int, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	var out []ScalabilityResult
	for _, size := range sizes {
		group := bySize[size]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Processes < group[j].Processes })
		lo, hi := group[0], group[len(group)-1]
		if lo.Processes == hi.Processes {
			continue
		}
		if !(lo.Efficiency > 0) {
			return nil, &DegenerateTimingError{"efficiency at " + lo.Key.String(), lo.Efficiency}
		}
		out = append(out, ScalabilityResult{
			MatrixSize:        size,
			MinProcesses:      lo.Processes,
			MaxProcesses:      hi.Processes,
			ScalingEfficiency: hi.Efficiency / lo.Efficiency,
		})
	}
	return out, nil
}
