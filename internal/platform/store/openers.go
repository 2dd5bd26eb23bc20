package store

import (
	"context"
	"fmt"
	"time"

	"textpolish/internal/platform/logger"
	chx "textpolish/internal/platform/store/ch"
	"textpolish/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// sleep is a seam for tests
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryPing pings until it succeeds, attempts run out or ctx ends.
// Backoff doubles from backoffStart up to backoffCeiling.
func retryPing(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	var last error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, last)
}

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		AppName:  "textpolish",
	}, nil)
	if err != nil {
		return nil, err
	}
	// ping the bare pool so startup retries do not show up as SQL trace lines
	if err := retryPing(ctx, cfg.ConnectRetries, cfg.PingTimeout, pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}
	t := tracing{backend: "pg", slow: time.Duration(cfg.SlowQueryMs) * time.Millisecond}
	if cfg.LogSQL {
		t.tracer = LogTracer(log)
	}
	return newPGAdapter(pool, t), nil
}

func openSQLite(ctx context.Context, cfg SQLiteConfig, log logger.Logger) (TxRunner, error) {
	t := tracing{backend: "sqlite"}
	if cfg.LogSQL {
		t.tracer = LogTracer(log)
	}
	return OpenSQLite(ctx, cfg.Path, t.tracer)
}

func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.URL, Role: cfg.ClientRole, Tag: cfg.ClientTag})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

func openRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := redis.NewClient(opt)
	if err := retryPing(ctx, 5, 3*time.Second, func(ctx context.Context) error {
		return c.Ping(ctx).Err()
	}); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
