// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Scalesave archives benchmark result tables in a SQL database.
//
// Usage:
//
//	scalesave [-db driver:dsn] [-results dir] [-label text]
//
// Scalesave reads serial_results.csv, mpi_results.csv and, if present,
// benchmark_summary.csv from the results directory and stores them as
// one run in the database. The run can later be reported with
// scalestat -db.
//
// The database is given as driver:dsn. The sqlite3 and mysql drivers
// are supported; mysql DSNs may use a cloudsql(instance) address.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/net/context"

	"golang.org/x/scalestat/storage/db"
	_ "golang.org/x/scalestat/storage/db/sqlite3"
	"golang.org/x/scalestat/timing"
)

func main() {
	log.SetPrefix("scalesave: ")
	log.SetFlags(0)
	if err := scalesave(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func scalesave(stdout, stderr io.Writer, args []string) error {
	fset := flag.NewFlagSet("scalesave", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprintf(stderr, "usage: scalesave [flags]\n")
		fset.PrintDefaults()
	}
	var (
		dbSpec  = fset.String("db", "sqlite3:scalestat.db", "archive in the database `driver:dsn`")
		results = fset.String("results", "results", "read result tables from `dir`")
		label   = fset.String("label", "", "label the archived run with `text`")
		verbose = fset.Bool("v", false, "print verbose log messages")
	)
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() > 0 {
		fset.Usage()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fset.Args(), " "))
	}

	fsys := os.DirFS(*results)
	src := timing.DefaultSources
	if _, err := fs.Stat(fsys, src.Summary); errors.Is(err, fs.ErrNotExist) {
		src.Summary = ""
		if *verbose {
			fmt.Fprintf(stderr, "no %s; archiving timings only\n", filepath.Join(*results, timing.DefaultSources.Summary))
		}
	}
	ds, err := timing.Load(fsys, src)
	if err != nil {
		var nf *timing.DataNotFoundError
		if errors.As(err, &nf) {
			nf.Path = filepath.Join(*results, nf.Path)
		}
		return err
	}

	d, err := db.Open(*dbSpec)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer d.Close()

	if *label == "" {
		*label = *results
	}
	run, err := d.InsertDataset(context.Background(), *label, ds)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	fmt.Fprintf(stdout, "run %d: %d serial, %d parallel, %d summary rows\n", run.ID, len(ds.Serial), len(ds.Parallel), len(ds.Summary))
	return nil
}
