// Package repokit holds the shared types and helpers repos are written against
package repokit

import (
	"context"

	"textpolish/internal/platform/store"
)

type (
	// Queryer is the read and write surface repos bind to
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open a transaction
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row
	Row = store.Row
	// CommandTag reports what a write did
	CommandTag = store.CommandTag
)

// Dialect names the SQL flavour a repo is bound to
type Dialect string

const (
	// Postgres uses $n placeholders
	Postgres Dialect = "pg"
	// SQLite uses ? placeholders
	SQLite Dialect = "sqlite"
)

// SQL picks the statement for d
func (d Dialect) SQL(pg, sqlite string) string {
	if d == SQLite {
		return sqlite
	}
	return pg
}

// WithTx runs fn inside one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
