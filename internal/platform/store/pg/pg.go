// Package pg opens the pgx pool
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	AppName  string
}

// newPool is a seam for tests
var newPool = pgxpool.NewWithConfig

// Open parses the URL, applies cfg and mut, and creates the pool.
// It does not wait for the server; callers ping.
func Open(ctx context.Context, cfg Config, mut func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MaxConnIdleTime = 5 * time.Minute
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if mut != nil {
		mut(pc)
	}
	return newPool(ctx, pc)
}
