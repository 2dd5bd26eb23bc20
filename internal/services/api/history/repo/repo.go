// Package repo persists the processing history on Postgres or SQLite
package repo

import (
	"context"
	"time"

	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/store"

	"textpolish/internal/services/api/history/domain"
)

// Repo is the history persistence surface used by the service layer
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, e domain.Entry) (int64, error)
	List(ctx context.Context, userID string, limit, offset int) ([]domain.Record, error)
	Count(ctx context.Context, userID string) (int, error)
	Get(ctx context.Context, id int64) (domain.Record, error)
}

type queries struct {
	q repokit.Queryer
	d repokit.Dialect
}

// New returns a binder for dialect d
func New(d repokit.Dialect) repokit.Binder[Repo] {
	return repokit.BindFunc[Repo](func(q repokit.Queryer) Repo { return &queries{q: q, d: d} })
}

var schemaPG = []string{
	`CREATE TABLE IF NOT EXISTS processing_history (
		id              BIGSERIAL PRIMARY KEY,
		user_id         TEXT NOT NULL DEFAULT 'anonymous',
		original_text   TEXT NOT NULL,
		processed_text  TEXT NOT NULL,
		ai_probability  DOUBLE PRECISION NOT NULL,
		processing_time DOUBLE PRECISION NOT NULL,
		style           TEXT NOT NULL DEFAULT 'academic',
		api_used        TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS processing_history_user_idx ON processing_history (user_id, id DESC)`,
}

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS processing_history (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id         TEXT NOT NULL DEFAULT 'anonymous',
		original_text   TEXT NOT NULL,
		processed_text  TEXT NOT NULL,
		ai_probability  REAL NOT NULL,
		processing_time REAL NOT NULL,
		style           TEXT NOT NULL DEFAULT 'academic',
		api_used        TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS processing_history_user_idx ON processing_history (user_id, id DESC)`,
}

// EnsureSchema creates the table and index when missing
func (r *queries) EnsureSchema(ctx context.Context) error {
	stmts := schemaPG
	if r.d == repokit.SQLite {
		stmts = schemaSQLite
	}
	for _, s := range stmts {
		if _, err := r.q.Exec(ctx, s); err != nil {
			return perr.FromDB(err, "history: ensure schema")
		}
	}
	return nil
}

// Insert appends one row and returns its id
func (r *queries) Insert(ctx context.Context, e domain.Entry) (int64, error) {
	sql := r.d.SQL(
		`INSERT INTO processing_history
			(user_id, original_text, processed_text, ai_probability, processing_time, style, api_used)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		`INSERT INTO processing_history
			(user_id, original_text, processed_text, ai_probability, processing_time, style, api_used)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
	)
	id, err := store.Scalar[int64](ctx, r.q, sql,
		e.UserID, e.OriginalText, e.ProcessedText, e.AIProbability, e.ProcessingTime, e.Style, e.APIUsed)
	if err != nil {
		return 0, perr.FromDB(err, "history: insert")
	}
	return id, nil
}

const columnsPG = `id, user_id, original_text, processed_text, ai_probability, processing_time,
	style, api_used, EXTRACT(EPOCH FROM created_at)::bigint`

const columnsSQLite = `id, user_id, original_text, processed_text, ai_probability, processing_time,
	style, api_used, CAST(strftime('%s', created_at) AS INTEGER)`

// List returns newest first. An empty userID lists every user.
func (r *queries) List(ctx context.Context, userID string, limit, offset int) ([]domain.Record, error) {
	var out []domain.Record
	var err error
	if r.d == repokit.SQLite {
		out, err = store.Many(ctx, r.q, scan, `SELECT `+columnsSQLite+` FROM processing_history
			WHERE (? = '' OR user_id = ?)
			ORDER BY id DESC LIMIT ? OFFSET ?`, userID, userID, limit, offset)
	} else {
		out, err = store.Many(ctx, r.q, scan, `SELECT `+columnsPG+` FROM processing_history
			WHERE ($1 = '' OR user_id = $1)
			ORDER BY id DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	}
	if err != nil {
		return nil, perr.FromDB(err, "history: list")
	}
	return out, nil
}

// Count returns the number of rows List would page over
func (r *queries) Count(ctx context.Context, userID string) (int, error) {
	var n int64
	var err error
	if r.d == repokit.SQLite {
		n, err = store.Scalar[int64](ctx, r.q,
			`SELECT COUNT(*) FROM processing_history WHERE (? = '' OR user_id = ?)`, userID, userID)
	} else {
		n, err = store.Scalar[int64](ctx, r.q,
			`SELECT COUNT(*) FROM processing_history WHERE ($1 = '' OR user_id = $1)`, userID)
	}
	if err != nil {
		return 0, perr.FromDB(err, "history: count")
	}
	return int(n), nil
}

// Get loads one row; a missing id is ErrorCodeNotFound
func (r *queries) Get(ctx context.Context, id int64) (domain.Record, error) {
	sql := r.d.SQL(
		`SELECT `+columnsPG+` FROM processing_history WHERE id = $1`,
		`SELECT `+columnsSQLite+` FROM processing_history WHERE id = ?`,
	)
	rec, err := scan(r.q.QueryRow(ctx, sql, id))
	if store.IsNoRows(err) {
		return domain.Record{}, perr.NotFoundf("history record %d not found", id)
	}
	if err != nil {
		return domain.Record{}, perr.FromDB(err, "history: get")
	}
	return rec, nil
}

func scan(row repokit.Row) (domain.Record, error) {
	var rec domain.Record
	var created int64
	err := row.Scan(&rec.ID, &rec.UserID, &rec.OriginalText, &rec.ProcessedText,
		&rec.AIProbability, &rec.ProcessingTime, &rec.Style, &rec.APIUsed, &created)
	rec.CreatedAt = time.Unix(created, 0).UTC()
	return rec, err
}
