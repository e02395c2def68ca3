// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timing

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadRecords(t *testing.T) {
	for _, test := range []struct {
		name  string
		table Table
		input string
		want  []Record
	}{
		{
			"serial",
			SerialTable,
			"matrix_size,execution_time\n256,0.25\n256,0.35\n512,2.0\n",
			[]Record{{256, 1, 0.25}, {256, 1, 0.35}, {512, 1, 2.0}},
		},
		{
			"parallel",
			ParallelTable,
			"matrix_size,processes,execution_time\n512,4,0.55\n512,2,1.1\n",
			[]Record{{512, 4, 0.55}, {512, 2, 1.1}},
		},
		{
			"reordered columns",
			ParallelTable,
			"execution_time,processes,matrix_size,run\n0.55,4,512,1\n",
			[]Record{{512, 4, 0.55}},
		},
		{
			"blank lines and spaces",
			ParallelTable,
			"Matrix_Size, processes, execution_time\n\n512, 4, 0.55\n\n",
			[]Record{{512, 4, 0.55}},
		},
		{
			"float sizes",
			ParallelTable,
			"matrix_size,processes,execution_time\n512.0,4.0,0.5\n",
			[]Record{{512, 4, 0.5}},
		},
		{
			"header only",
			SerialTable,
			"matrix_size,execution_time\n",
			nil,
		},
		{
			"zero time is not a syntax error",
			ParallelTable,
			"matrix_size,processes,execution_time\n512,4,0\n",
			[]Record{{512, 4, 0}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := ReadRecords(strings.NewReader(test.input), "test.csv", test.table)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	for _, test := range []struct {
		table Table
		input string
		want  string
	}{
		{SerialTable, "", "test.csv:1: missing header row"},
		{SerialTable, "matrix_size\n256\n", `test.csv:1: serial table missing column "execution_time"`},
		{ParallelTable, "matrix_size,execution_time\n256,1\n", `test.csv:1: parallel table missing column "processes"`},
		{SerialTable, "matrix_size,execution_time\n256,1\nabc,1\n", `test.csv:3: invalid matrix_size "abc"`},
		{SerialTable, "matrix_size,execution_time\n0,1\n", "test.csv:2: matrix_size must be positive, got 0"},
		{ParallelTable, "matrix_size,processes,execution_time\n256,-2,1\n", "test.csv:2: processes must be positive, got -2"},
		{ParallelTable, "matrix_size,processes,execution_time\n256,2.5,1\n", `test.csv:2: invalid processes "2.5"`},
		{SerialTable, "matrix_size,execution_time\n256,fast\n", `test.csv:2: invalid execution_time "fast"`},
		{SerialTable, "execution_time,matrix_size\n1\n", "test.csv:2: missing value for matrix_size"},
	} {
		_, err := ReadRecords(strings.NewReader(test.input), "test.csv", test.table)
		if err == nil {
			t.Errorf("%q: got success, want error %s", test.input, test.want)
			continue
		}
		if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("%q: got %T, want *SyntaxError", test.input, err)
		}
		if err.Error() != test.want {
			t.Errorf("%q: got error %s, want %s", test.input, err, test.want)
		}
	}
}

func TestReadSummary(t *testing.T) {
	input := "matrix_size,processes,speedup,efficiency\n512,4,3.636,0.909\n1024,2,1.7,0.85\n"
	got, err := ReadSummary(strings.NewReader(input), "summary.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := []SummaryRecord{{512, 4, 3.636, 0.909}, {1024, 2, 1.7, 0.85}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
