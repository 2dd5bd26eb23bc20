package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) the database at path on a single
// connection, so ":memory:" works too. tracer may be nil.
func OpenSQLite(ctx context.Context, path string, tracer QueryTracer) (TxRunner, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlAdapter{db: db, sqlQuerier: sqlQuerier{q: db, tracing: tracing{backend: "sqlite", tracer: tracer}}}, nil
}

// IsNoRows reports a missing row from either driver
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlQuerier struct {
	q sqlDB
	tracing
}

func (a sqlQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := a.q.ExecContext(ctx, query, args...)
	a.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	return sqlTag{verb: verbOf(query), n: n}, nil
}

func (a sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.q.QueryContext(ctx, query, args...)
	a.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{rs}, nil
}

func (a sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	r := a.q.QueryRowContext(ctx, query, args...)
	return scanHook{r: r, after: func(err error) {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
		}
		a.emit(ctx, query, args, start, err)
	}}
}

type sqlAdapter struct {
	db *sql.DB
	sqlQuerier
}

func (a *sqlAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlQuerier{q: tx, tracing: a.tracing}); err != nil {
		return errors.Join(err, ignoreDone(tx.Rollback()))
	}
	return tx.Commit()
}

func (a *sqlAdapter) Ping(ctx context.Context) error { return a.db.PingContext(ctx) }
func (a *sqlAdapter) Close() error                   { return a.db.Close() }

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

type sqlTag struct {
	verb string
	n    int64
}

func (t sqlTag) RowsAffected() int64 { return t.n }
func (t sqlTag) String() string {
	return strings.TrimSpace(t.verb + " " + strconv.FormatInt(t.n, 10))
}

func verbOf(q string) string {
	f := strings.Fields(q)
	if len(f) == 0 {
		return ""
	}
	return strings.ToUpper(f[0])
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close() error          { return x.r.Close() }

func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}
