package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"hotelpms/infras/postgres"
	"io"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Statement is one query sent to the database, after sqlx rebinding.
type Statement struct {
	Query string
	Args  []any
}

type resultSet struct {
	columns []string
	rows    [][]driver.Value
}

// Recorder is an in-memory database that keeps every executed statement. Queries return the
// queued result sets in order, then empty results.
type Recorder struct {
	mu         sync.Mutex
	statements []Statement
	results    []resultSet
}

// NewConnection returns a postgres.Connection whose read and write pools both record into rec.
// Placeholders are rebound in the postgres ($1) style.
func NewConnection() (*postgres.Connection, *Recorder) {
	rec := &Recorder{}
	db := sqlx.NewDb(sql.OpenDB(connector{rec: rec}), "postgres")

	return &postgres.Connection{Read: db, Write: db}, rec
}

// QueueRows sets the rows returned by the next query.
func (r *Recorder) QueueRows(columns []string, rows ...[]driver.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, resultSet{columns: columns, rows: rows})
}

func (r *Recorder) Statements() []Statement {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Statement(nil), r.statements...)
}

// Last returns the most recent statement, or the zero value when nothing ran.
func (r *Recorder) Last() Statement {
	statements := r.Statements()
	if len(statements) == 0 {
		return Statement{}
	}

	return statements[len(statements)-1]
}

func (r *Recorder) record(query string, values []driver.Value) {
	args := make([]any, len(values))
	for idx, value := range values {
		args[idx] = value
	}

	r.mu.Lock()
	r.statements = append(r.statements, Statement{Query: query, Args: args})
	r.mu.Unlock()
}

func (r *Recorder) next() *rows {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.results) == 0 {
		return &rows{}
	}

	set := r.results[0]
	r.results = r.results[1:]

	return &rows{columns: set.columns, values: set.rows}
}

type connector struct {
	rec *Recorder
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{rec: c.rec}, nil
}

func (c connector) Driver() driver.Driver {
	return recordingDriver{rec: c.rec}
}

type recordingDriver struct {
	rec *Recorder
}

func (d recordingDriver) Open(string) (driver.Conn, error) {
	return &conn{rec: d.rec}, nil
}

type conn struct {
	rec *Recorder
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return &stmt{rec: c.rec, query: query}, nil
}

func (c *conn) Close() error {
	return nil
}

func (c *conn) Begin() (driver.Tx, error) {
	return tx{}, nil
}

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type stmt struct {
	rec   *Recorder
	query string
}

func (s *stmt) Close() error {
	return nil
}

func (s *stmt) NumInput() int {
	return -1
}

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	s.rec.record(s.query, args)

	return driver.RowsAffected(1), nil
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	s.rec.record(s.query, args)

	return s.rec.next(), nil
}

type rows struct {
	columns []string
	values  [][]driver.Value
}

func (r *rows) Columns() []string {
	return r.columns
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if len(r.values) == 0 {
		return io.EOF
	}

	copy(dest, r.values[0])
	r.values = r.values[1:]

	return nil
}
