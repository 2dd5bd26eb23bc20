package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what both the pool and a transaction offer
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQuerier adapts a pgx querier to RowQuerier with tracing
type pgQuerier struct {
	q pgxQuerier
	tracing
}

func (a pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.q.Exec(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	return ct, err
}

func (a pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.q.Query(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (a pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.q.QueryRow(ctx, sql, args...)
	return scanHook{r: r, after: func(err error) {
		if err == pgx.ErrNoRows {
			err = nil
		}
		a.emit(ctx, sql, args, start, err)
	}}
}

// pgAdapter is the pool-level TxRunner
type pgAdapter struct {
	pool *pgxpool.Pool
	pgQuerier
}

func newPGAdapter(pool *pgxpool.Pool, t tracing) *pgAdapter {
	return &pgAdapter{pool: pool, pgQuerier: pgQuerier{q: pool, tracing: t}}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{q: tx, tracing: a.tracing})
	})
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.pool.Ping(ctx) }

func (a *pgAdapter) Close() error {
	a.pool.Close()
	return nil
}

type pgRows struct{ r pgx.Rows }

func (x pgRows) Next() bool            { return x.r.Next() }
func (x pgRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x pgRows) Err() error            { return x.r.Err() }

func (x pgRows) Close() error {
	x.r.Close()
	return x.r.Err()
}

func (x pgRows) Columns() []string {
	fds := x.r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

// scanHook runs after once Scan returns, so QueryRow is traced with its scan error
type scanHook struct {
	r     Row
	after func(error)
}

func (s scanHook) Scan(dst ...any) error {
	err := s.r.Scan(dst...)
	s.after(err)
	return err
}
