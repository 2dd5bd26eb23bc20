package modkit

import (
	"textpolish/internal/core/polish"
	"textpolish/internal/modkit/repokit"
	"textpolish/internal/platform/config"
	"textpolish/internal/platform/logger"
	"textpolish/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps holds the shared dependencies handed to modules.
// Every store field is optional; modules nil check what they use.
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	Lite  repokit.TxRunner
	CH    store.Clickhouse
	Redis *redis.Client
	// Polisher is the shared remote generator client; nil means fallback only
	Polisher *polish.Polisher
	// Pingers are the readiness probes for every enabled backend
	Pingers map[string]store.Pinger
}

// DepsFrom copies the enabled backends out of st
func DepsFrom(log logger.Logger, cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st == nil {
		return d
	}
	d.PG, d.Lite, d.CH, d.Redis = st.PG, st.Lite, st.CH, st.Redis
	d.Pingers = st.Pingers()
	return d
}

// SQL picks the relational store: Postgres when configured, else SQLite.
// dialect is "pg", "sqlite" or "" when neither is available.
func (d Deps) SQL() (db repokit.TxRunner, dialect string) {
	switch {
	case d.PG != nil:
		return d.PG, "pg"
	case d.Lite != nil:
		return d.Lite, "sqlite"
	}
	return nil, ""
}

// PolisherOrFallback returns the configured Polisher or a fallback only one
func (d Deps) PolisherOrFallback() *polish.Polisher {
	if d.Polisher != nil {
		return d.Polisher
	}
	return polish.New(nil, polish.Options{})
}
