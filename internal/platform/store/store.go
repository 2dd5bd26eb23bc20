// Package store opens the optional storage backends and exposes them through
// small seams the repos code against
package store

import (
	"context"
	"errors"
	"fmt"

	"textpolish/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Store holds whichever backends were enabled. A nil field means disabled.
type Store struct {
	Log logger.Logger

	// PG is Postgres through pgx
	PG TxRunner
	// Lite is SQLite through database/sql and modernc.org/sqlite
	Lite TxRunner
	// CH is the ClickHouse analytics sink
	CH Clickhouse
	// Redis backs the task queue when TASKS_BACKEND=redis
	Redis *redis.Client
}

// Row is a single-row scan target
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set cursor
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the SQL surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction.
// fn's error rolls back; nil commits.
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam: batch inserts and reads
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects every backend enabled in cfg. On failure anything already
// opened is closed again.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Named("store").With().Logger()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	steps := []struct {
		on   bool
		name string
		open func() error
	}{
		{cfg.PG.Enabled, "pg", func() (err error) { s.PG, err = openPG(ctx, cfg.PG, s.Log); return }},
		{cfg.Lite.Enabled, "sqlite", func() (err error) { s.Lite, err = openSQLite(ctx, cfg.Lite, s.Log); return }},
		{cfg.CH.Enabled, "clickhouse", func() (err error) { s.CH, err = openCH(ctx, cfg.CH); return }},
		{cfg.Redis.Enabled, "redis", func() (err error) { s.Redis, err = openRedis(ctx, cfg.Redis); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("store: open %s: %w", st.name, err)
		}
		s.Log.Info().Str("backend", st.name).Msg("store backend ready")
	}
	return s, nil
}

// Pingers lists the enabled backends by name for readiness checks
func (s *Store) Pingers() map[string]Pinger {
	out := map[string]Pinger{}
	if s == nil {
		return out
	}
	if p, ok := s.PG.(Pinger); ok {
		out["pg"] = p
	}
	if p, ok := s.Lite.(Pinger); ok {
		out["sqlite"] = p
	}
	if s.CH != nil {
		out["clickhouse"] = s.CH
	}
	if s.Redis != nil {
		out["redis"] = redisPinger{s.Redis}
	}
	return out
}

// Guard pings every enabled backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for name, p := range s.Pingers() {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every opened backend
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, c := range []any{s.PG, s.Lite, s.CH} {
		if cl, ok := c.(interface{ Close() error }); ok {
			errs = append(errs, cl.Close())
		}
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	return errors.Join(errs...)
}

type redisPinger struct{ c *redis.Client }

func (r redisPinger) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }
