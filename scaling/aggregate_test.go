// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"golang.org/x/scalestat/timing"
)

func near(a, b float64) bool {
	return Close(a, b, 1e-9)
}

func TestAverageByConfiguration(t *testing.T) {
	records := []timing.Record{
		{1024, 8, 3.0},
		{512, 4, 0.5},
		{512, 2, 1.0},
		{512, 4, 0.6},
		{1024, 8, 5.0},
	}
	got, err := AverageByConfiguration(records, BySizeAndProcesses)
	if err != nil {
		t.Fatal(err)
	}
	want := []Key{{512, 2}, {512, 4}, {1024, 8}}
	wantMean := []float64{1.0, 0.55, 4.0}
	wantTrials := []int{1, 2, 2}
	if len(got) != len(want) {
		t.Fatalf("got %d averages, want %d", len(got), len(want))
	}
	for i, avg := range got {
		if avg.Key != want[i] || !near(avg.Mean, wantMean[i]) || avg.Trials != wantTrials[i] {
			t.Errorf("average %d: got %+v, want key %v mean %v trials %d", i, avg, want[i], wantMean[i], wantTrials[i])
		}
	}
	if got[0].StdDev != 0 {
		t.Errorf("single-trial StdDev = %v, want 0", got[0].StdDev)
	}
	if !near(got[2].StdDev, math.Sqrt2) {
		t.Errorf("StdDev of {3, 5} = %v, want √2", got[2].StdDev)
	}

	serial, err := AverageByConfiguration([]timing.Record{{512, 1, 2.0}, {256, 1, 0.5}, {512, 1, 2.0}}, BySize)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(serial, []ConfigurationAverage{
		{Key: Key{256, 1}, Mean: 0.5, Trials: 1},
		{Key: Key{512, 1}, Mean: 2.0, Trials: 2},
	}) {
		t.Errorf("serial averages: got %+v", serial)
	}
}

// TestAverageMatchesMean checks on random record sets that each
// average is the arithmetic mean of exactly the records sharing its
// key.
func TestAverageMatchesMean(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	sizes := []int{128, 256, 512, 1024}
	procs := []int{1, 2, 4, 8, 16}
	for iter := 0; iter < 200; iter++ {
		n := 1 + r.Intn(60)
		records := make([]timing.Record, n)
		for i := range records {
			records[i] = timing.Record{
				MatrixSize:    sizes[r.Intn(len(sizes))],
				Processes:     procs[r.Intn(len(procs))],
				ExecutionTime: 0.001 + r.Float64()*10,
			}
		}
		avgs, err := AverageByConfiguration(records, BySizeAndProcesses)
		if err != nil {
			t.Fatal(err)
		}
		seen := 0
		for i, avg := range avgs {
			if i > 0 && !avgs[i-1].Key.Less(avg.Key) {
				t.Fatalf("averages not in ascending key order: %v then %v", avgs[i-1].Key, avg.Key)
			}
			sum, count := 0.0, 0
			for _, rec := range records {
				if rec.MatrixSize == avg.MatrixSize && rec.Processes == avg.Processes {
					sum += rec.ExecutionTime
					count++
				}
			}
			if count != avg.Trials || !near(sum/float64(count), avg.Mean) {
				t.Fatalf("%v: got mean %v over %d trials, want %v over %d", avg.Key, avg.Mean, avg.Trials, sum/float64(count), count)
			}
			seen += count
		}
		if seen != n {
			t.Fatalf("averages cover %d records, want %d", seen, n)
		}
	}
}

func TestAverageErrors(t *testing.T) {
	var eg *EmptyGroupError
	if _, err := AverageByConfiguration(nil, BySize); !errors.As(err, &eg) {
		t.Errorf("empty input: got %v, want *EmptyGroupError", err)
	}
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		records := []timing.Record{{512, 4, 0.5}, {512, 4, bad}}
		var dt *DegenerateTimingError
		if _, err := AverageByConfiguration(records, BySizeAndProcesses); !errors.As(err, &dt) {
			t.Errorf("time %v: got %v, want *DegenerateTimingError", bad, err)
		}
	}
}

func TestComputeSummary(t *testing.T) {
	serial := []ConfigurationAverage{{Key: Key{512, 1}, Mean: 2.0}}
	parallel := []ConfigurationAverage{{Key: Key{512, 4}, Mean: 0.55}}
	rows, err := ComputeSummary(serial, parallel)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Key != (Key{512, 4}) {
		t.Errorf("got key %v", row.Key)
	}
	if !near(row.Speedup, 2.0/0.55) || math.Round(row.Speedup*1000) != 3636 {
		t.Errorf("speedup = %v, want 3.636", row.Speedup)
	}
	if !near(row.Efficiency, 2.0/0.55/4) || math.Round(row.Efficiency*1000) != 909 {
		t.Errorf("efficiency = %v, want 0.909", row.Efficiency)
	}
}

func TestComputeSummaryConsistent(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	var serial, parallel []ConfigurationAverage
	for _, size := range []int{256, 512, 1024, 2048} {
		serial = append(serial, ConfigurationAverage{Key: Key{size, 1}, Mean: 0.01 + r.Float64()*100})
		for _, p := range []int{1, 2, 3, 4, 6, 8, 12, 16} {
			parallel = append(parallel, ConfigurationAverage{Key: Key{size, p}, Mean: 0.01 + r.Float64()*100})
		}
	}
	rows, err := ComputeSummary(serial, parallel)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if !near(row.Efficiency*float64(row.Processes), row.Speedup) {
			t.Errorf("%v: efficiency %v × %d != speedup %v", row.Key, row.Efficiency, row.Processes, row.Speedup)
		}
	}
}

func TestComputeSummaryErrors(t *testing.T) {
	serial := []ConfigurationAverage{{Key: Key{512, 1}, Mean: 2.0}}

	var mb *MissingBaselineError
	_, err := ComputeSummary(serial, []ConfigurationAverage{{Key: Key{1024, 2}, Mean: 1}})
	if !errors.As(err, &mb) || mb.MatrixSize != 1024 {
		t.Errorf("got %v, want missing baseline for 1024", err)
	}

	var dt *DegenerateTimingError
	if _, err := ComputeSummary(serial, []ConfigurationAverage{{Key: Key{512, 2}, Mean: 0}}); !errors.As(err, &dt) {
		t.Errorf("zero parallel mean: got %v, want *DegenerateTimingError", err)
	}
	if _, err := ComputeSummary([]ConfigurationAverage{{Key: Key{512, 1}, Mean: 0}}, nil); !errors.As(err, &dt) {
		t.Errorf("zero serial mean: got %v, want *DegenerateTimingError", err)
	}
}

func TestScalability(t *testing.T) {
	rows := []SummaryRow{
		{Key{1024, 8}, 3.2, 0.400},
		{Key{256, 1}, 1.0, 1.0},
		{Key{1024, 2}, 1.7, 0.850},
		{Key{512, 4}, 3.0, 0.75},
		{Key{512, 2}, 1.9, 0.95},
		{Key{512, 1}, 1.0, 1.0},
	}
	got, err := Scalability(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %+v, want results for 512 and 1024 only", got)
	}
	if got[0].MatrixSize != 512 || got[0].MinProcesses != 1 || got[0].MaxProcesses != 4 || !near(got[0].ScalingEfficiency, 0.75) {
		t.Errorf("512: got %+v", got[0])
	}
	if got[1].MatrixSize != 1024 || !near(got[1].ScalingEfficiency, 0.4/0.85) || math.Round(got[1].ScalingEfficiency*1000) != 471 {
		t.Errorf("1024: got %+v, want scaling efficiency 0.471", got[1])
	}

	// Reordering the input must not change the result.
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		shuffled := append([]SummaryRow(nil), rows...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		again, err := Scalability(shuffled)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(again, got) {
			t.Fatalf("shuffled input gave %+v, want %+v", again, got)
		}
	}

	// The caller's rows are left untouched.
	if rows[0].Key != (Key{1024, 8}) {
		t.Errorf("Scalability reordered its input")
	}
}

func TestScalabilitySingleCount(t *testing.T) {
	got, err := Scalability([]SummaryRow{{Key{256, 1}, 1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want no results", got)
	}
}

func TestScalabilityZeroEfficiency(t *testing.T) {
	var dt *DegenerateTimingError
	_, err := Scalability([]SummaryRow{{Key{256, 1}, 0, 0}, {Key{256, 2}, 1, 0.5}})
	if !errors.As(err, &dt) {
		t.Errorf("got %v, want *DegenerateTimingError", err)
	}
}
