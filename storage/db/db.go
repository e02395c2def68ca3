// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives benchmark timing runs in a SQL database and
// loads them back as timing.Datasets.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/net/context"
	"golang.org/x/scalestat/timing"
)

// DB is a high-level interface to a timing archive. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql        *sql.DB // underlying database connection
	driverName string
	// prepared statements
	insertRun *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db, driverName: driverName}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

// Open parses a "driver:dsn" string, such as "sqlite3:results.db",
// and calls OpenSQL.
func Open(spec string) (*DB, error) {
	i := strings.Index(spec, ":")
	if i <= 0 {
		return nil, fmt.Errorf("database %q is not of the form driver:dsn", spec)
	}
	return OpenSQL(spec[:i], spec[i+1:])
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255)
);
CREATE TABLE IF NOT EXISTS Trials (
	RunID BIGINT UNSIGNED,
	TrialID BIGINT UNSIGNED,
	Serial BOOLEAN,
	MatrixSize INT,
	Processes INT,
	ExecutionTime DOUBLE,
	PRIMARY KEY (RunID, TrialID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Summaries (
	RunID BIGINT UNSIGNED,
	RowID BIGINT UNSIGNED,
	MatrixSize INT,
	Processes INT,
	Speedup DOUBLE,
	Efficiency DOUBLE,
	PRIMARY KEY (RunID, RowID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label) VALUES (?)")
	return err
}

// A Run is one archived benchmark run: the serial and parallel trials
// and, optionally, the summary table produced together.
type Run struct {
	ID    int64
	Label string
}

// InsertDataset archives ds as a new run labelled label and returns
// it. The whole dataset is written in a single transaction.
func (db *DB) InsertDataset(ctx context.Context, label string, ds *timing.Dataset) (run *Run, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, label)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var args []interface{}
	trial := 0
	add := func(recs []timing.Record, serial bool) {
		for _, r := range recs {
			args = append(args, id, trial, serial, r.MatrixSize, r.Processes, r.ExecutionTime)
			trial++
		}
	}
	add(ds.Serial, true)
	add(ds.Parallel, false)
	if err := insertRows(ctx, tx, "Trials", 6, args); err != nil {
		return nil, err
	}

	args = args[:0]
	for i, s := range ds.Summary {
		args = append(args, id, i, s.MatrixSize, s.Processes, s.Speedup, s.Efficiency)
	}
	if err := insertRows(ctx, tx, "Summaries", 6, args); err != nil {
		return nil, err
	}
	return &Run{ID: id, Label: label}, nil
}

// maxRowsPerInsert bounds the size of a multi-row INSERT; sqlite
// limits the number of bound parameters per statement.
const maxRowsPerInsert = 100

// insertRows inserts rows of width columns each, given as a flat
// argument list, into table.
func insertRows(ctx context.Context, tx *sql.Tx, table string, width int, args []interface{}) error {
	if len(args)%width != 0 {
		return fmt.Errorf("insert into %s: %d values do not fill rows of %d", table, len(args), width)
	}
	for len(args) > 0 {
		n := len(args) / width
		if n > maxRowsPerInsert {
			n = maxRowsPerInsert
		}
		row := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"
		query := "INSERT INTO " + table + " VALUES " + strings.TrimSuffix(strings.Repeat(row+", ", n), ", ")
		if _, err := tx.ExecContext(ctx, query, args[:n*width]...); err != nil {
			return err
		}
		args = args[n*width:]
	}
	return nil
}

// Runs returns every archived run, oldest first.
func (db *DB) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Label FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		r := new(Run)
		var label sql.NullString
		if err := rows.Scan(&r.ID, &label); err != nil {
			return nil, err
		}
		r.Label = label.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recently archived run. If there are no
// runs, it returns a *timing.DataNotFoundError.
func (db *DB) LatestRun(ctx context.Context) (*Run, error) {
	r := new(Run)
	var label sql.NullString
	err := db.sql.QueryRowContext(ctx, "SELECT RunID, Label FROM Runs ORDER BY RunID DESC LIMIT 1").Scan(&r.ID, &label)
	if err == sql.ErrNoRows {
		return nil, &timing.DataNotFoundError{Source: timing.SerialTable, Path: db.driverName + " archive"}
	}
	if err != nil {
		return nil, err
	}
	r.Label = label.String
	return r, nil
}

// Dataset loads the run with the given ID.
//
// Like timing.Load it is all-or-nothing: if the run has no serial or
// no parallel trials, Dataset returns a *timing.DataNotFoundError and
// no data. A run archived without a summary yields a nil Summary.
func (db *DB) Dataset(ctx context.Context, runID int64) (*timing.Dataset, error) {
	ds := new(timing.Dataset)
	rows, err := db.sql.QueryContext(ctx, "SELECT Serial, MatrixSize, Processes, ExecutionTime FROM Trials WHERE RunID = ? ORDER BY TrialID", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var serial bool
		var r timing.Record
		if err := rows.Scan(&serial, &r.MatrixSize, &r.Processes, &r.ExecutionTime); err != nil {
			return nil, err
		}
		if serial {
			ds.Serial = append(ds.Serial, r)
		} else {
			ds.Parallel = append(ds.Parallel, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	where := fmt.Sprintf("%s archive run %d", db.driverName, runID)
	if len(ds.Serial) == 0 {
		return nil, &timing.DataNotFoundError{Source: timing.SerialTable, Path: where}
	}
	if len(ds.Parallel) == 0 {
		return nil, &timing.DataNotFoundError{Source: timing.ParallelTable, Path: where}
	}

	srows, err := db.sql.QueryContext(ctx, "SELECT MatrixSize, Processes, Speedup, Efficiency FROM Summaries WHERE RunID = ? ORDER BY RowID", runID)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s timing.SummaryRecord
		if err := srows.Scan(&s.MatrixSize, &s.Processes, &s.Speedup, &s.Efficiency); err != nil {
			return nil, err
		}
		ds.Summary = append(ds.Summary, s)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// CountRuns returns the number of archived runs.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
