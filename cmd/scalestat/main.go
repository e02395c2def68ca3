// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Scalestat summarizes the scaling of a parallel matrix multiplication
// benchmark.
//
// Usage:
//
//	scalestat [flags]
//
// Scalestat reads three CSV tables from the results directory:
// serial_results.csv (matrix_size, execution_time), mpi_results.csv
// (matrix_size, processes, execution_time) and benchmark_summary.csv
// (matrix_size, processes, speedup, efficiency). It averages the
// repeated trials of every configuration, computes the speedup and
// efficiency of each parallel configuration and the scaling efficiency
// of each matrix size, and prints a performance report. The report is
// also saved as performance_report.txt in the results directory, next
// to a set of charts.
//
// The summary table is never taken on trust: scalestat recomputes it
// from the timings and prints a warning for every row that disagrees
// by more than the -tolerance. With -trust-summary the supplied rows
// are reported instead of the recomputed ones.
//
// With -db, scalestat reads the most recent run (or the run selected
// with -run) from a SQL archive written by scalesave instead of the CSV
// files. With -gcs, outputs are written to a Cloud Storage bucket
// instead of the results directory.
//
// If any input table is missing, scalestat writes nothing and exits
// with status 1, suggesting the benchmark script to run first.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/net/context"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"golang.org/x/scalestat/chart"
	"golang.org/x/scalestat/report"
	"golang.org/x/scalestat/scaling"
	"golang.org/x/scalestat/storage/db"
	_ "golang.org/x/scalestat/storage/db/sqlite3"
	"golang.org/x/scalestat/storage/fs"
	"golang.org/x/scalestat/storage/fs/gcs"
	"golang.org/x/scalestat/storage/fs/local"
	"golang.org/x/scalestat/timing"
)

func main() {
	log.SetPrefix("scalestat: ")
	log.SetFlags(0)
	if err := scalestat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type options struct {
	results      string
	sources      timing.Sources
	dbSpec       string
	run          int64
	out          string
	html         string
	summaryOut   string
	charts       bool
	formats      string
	dpi          int
	trustSummary bool
	tolerance    float64
	gcsBucket    string
}

func parseFlags(stderr io.Writer, args []string) (*options, error) {
	fset := flag.NewFlagSet("scalestat", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprintf(stderr, "usage: scalestat [flags]\n")
		fset.PrintDefaults()
	}

	o := new(options)
	fset.StringVar(&o.results, "results", "results", "read result tables from and write outputs to `dir`")
	fset.StringVar(&o.sources.Serial, "serial", timing.DefaultSources.Serial, "serial timings `file` in the results directory")
	fset.StringVar(&o.sources.Parallel, "parallel", timing.DefaultSources.Parallel, "parallel timings `file` in the results directory")
	fset.StringVar(&o.sources.Summary, "summary", timing.DefaultSources.Summary, "precomputed summary `file` in the results directory; empty means none")
	fset.StringVar(&o.dbSpec, "db", "", "load timings from the SQL archive `driver:dsn` instead of CSV files")
	fset.Int64Var(&o.run, "run", 0, "archive run `id` to load with -db; 0 means the latest")
	fset.StringVar(&o.out, "o", "performance_report.txt", "save the text report as `file` in the output directory")
	fset.StringVar(&o.html, "html", "", "also save an HTML report as `file`")
	fset.StringVar(&o.summaryOut, "summary-out", "", "also save the summary table as CSV `file`")
	fset.BoolVar(&o.charts, "charts", true, "draw charts")
	fset.StringVar(&o.formats, "format", "png", "comma-separated chart `formats`: png, svg, pdf")
	fset.IntVar(&o.dpi, "dpi", chart.DefaultDPI, "PNG chart `resolution`")
	fset.BoolVar(&o.trustSummary, "trust-summary", false, "report the supplied summary instead of the recomputed one")
	fset.Float64Var(&o.tolerance, "tolerance", scaling.DefaultTolerance, "relative `tolerance` for checking the supplied summary")
	fset.StringVar(&o.gcsBucket, "gcs", "", "write outputs to Cloud Storage `bucket[/prefix]` instead of the results directory")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		fset.Usage()
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fset.Args(), " "))
	}
	if o.tolerance < 0 {
		return nil, fmt.Errorf("-tolerance must not be negative")
	}
	return o, nil
}

func scalestat(stdout, stderr io.Writer, args []string) error {
	o, err := parseFlags(stderr, args)
	if err != nil {
		return err
	}
	ctx := context.Background()

	ds, from, err := load(ctx, o)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "loaded %d serial and %d parallel timings from %s\n", len(ds.Serial), len(ds.Parallel), from)

	a, err := scaling.Analyze(ds, scaling.Options{TrustSummary: o.trustSummary, Tolerance: o.tolerance})
	if err != nil {
		return err
	}
	report.WriteWarnings(stderr, a.Warnings)

	sink, where, err := openSink(ctx, o)
	if err != nil {
		return err
	}
	display := func(name string) string {
		if o.gcsBucket != "" {
			return where + "/" + name
		}
		return path.Join(filepath.ToSlash(where), name)
	}

	var buf bytes.Buffer
	if err := report.WriteText(&buf, a, report.TextOptions{Path: display(o.out)}); err != nil {
		return err
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := fs.WriteFile(ctx, sink, o.out, buf.Bytes(), map[string]string{"kind": "report"}); err != nil {
		return err
	}

	if o.html != "" {
		buf.Reset()
		if err := report.WriteHTML(&buf, a, ""); err != nil {
			return err
		}
		if err := fs.WriteFile(ctx, sink, o.html, buf.Bytes(), map[string]string{"kind": "html"}); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "saved %s\n", display(o.html))
	}
	if o.summaryOut != "" {
		buf.Reset()
		if err := report.WriteSummaryCSV(&buf, a.Summary); err != nil {
			return err
		}
		if err := fs.WriteFile(ctx, sink, o.summaryOut, buf.Bytes(), map[string]string{"kind": "summary"}); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "saved %s\n", display(o.summaryOut))
	}
	if o.charts {
		r := &chart.Renderer{FS: sink, Formats: splitList(o.formats), DPI: o.dpi}
		names, err := r.Render(ctx, a)
		for _, name := range names {
			fmt.Fprintf(stderr, "saved %s\n", display(name))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// load reads the dataset from the archive or the results directory
// and describes where it came from.
func load(ctx context.Context, o *options) (*timing.Dataset, string, error) {
	if o.dbSpec == "" {
		ds, err := timing.Load(os.DirFS(o.results), o.sources)
		var nf *timing.DataNotFoundError
		if errors.As(err, &nf) {
			nf.Path = filepath.Join(o.results, nf.Path)
		}
		return ds, o.results, err
	}

	d, err := db.Open(o.dbSpec)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	defer d.Close()
	id := o.run
	if id == 0 {
		run, err := d.LatestRun(ctx)
		if err != nil {
			return nil, "", err
		}
		id = run.ID
	}
	ds, err := d.Dataset(ctx, id)
	return ds, fmt.Sprintf("archive run %d", id), err
}

// openSink returns the file system outputs are written to and its
// display name.
func openSink(ctx context.Context, o *options) (fs.FS, string, error) {
	if o.gcsBucket == "" {
		if err := os.MkdirAll(o.results, 0777); err != nil {
			return nil, "", err
		}
		return local.NewFS(o.results), o.results, nil
	}

	bucket, prefix, _ := strings.Cut(strings.TrimSuffix(o.gcsBucket, "/"), "/")
	if prefix != "" {
		prefix += "/"
	}
	ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, "", fmt.Errorf("cloud storage credentials: %w", err)
	}
	sink, err := gcs.NewFS(ctx, bucket, prefix, option.WithTokenSource(ts))
	if err != nil {
		return nil, "", err
	}
	return sink, "gs://" + strings.TrimSuffix(o.gcsBucket, "/"), nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}
