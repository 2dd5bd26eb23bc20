// Package repo reads and writes polish analytics: ClickHouse when enabled,
// otherwise aggregates straight off the history table
package repo

import (
	"context"
	"time"

	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/store"

	"textpolish/internal/services/api/stats/domain"
)

// Sources reported by ByStyle
const (
	SourceClickhouse = "clickhouse"
	SourceHistory    = "history"
)

// EventsTable is the ClickHouse event table
const EventsTable = "polish_events"

// Repo is the persistence surface for stats
type Repo interface {
	EnsureSchema(ctx context.Context) error
	InsertEvent(ctx context.Context, e domain.Event) error
	// ByStyle aggregates events since t and names the source it read
	ByStyle(ctx context.Context, since time.Time) ([]RowByStyle, string, error)
}

// RowByStyle holds sums so callers can roll styles up into a total
type RowByStyle struct {
	Style             string
	Total             int64
	Fallbacks         int64
	SumAIProbability  float64
	SumProcessingTime float64
}

// NewHybrid binds SQL reads of dialect d alongside an optional ClickHouse sink
func NewHybrid(ch store.Clickhouse, d repokit.Dialect) repokit.Binder[Repo] {
	return &hybridBinder{ch: ch, d: d}
}

type hybridBinder struct {
	ch store.Clickhouse
	d  repokit.Dialect
}

// Bind binds a Queryer, which may be nil when only ClickHouse is configured
func (b *hybridBinder) Bind(q repokit.Queryer) Repo { return &hybridStore{sql: q, ch: b.ch, d: b.d} }

type hybridStore struct {
	sql repokit.Queryer
	ch  store.Clickhouse
	d   repokit.Dialect
}

const ddl = `
	CREATE TABLE IF NOT EXISTS ` + EventsTable + ` (
		created_at      DateTime64(3, 'UTC'),
		style           LowCardinality(String),
		api_used        LowCardinality(String),
		fallback        UInt8,
		ai_probability  Float64,
		processing_time Float64,
		input_chars     UInt32,
		output_chars    UInt32
	)
	ENGINE = MergeTree
	PARTITION BY toYYYYMM(created_at)
	ORDER BY (style, created_at)`

// EnsureSchema creates the ClickHouse table; the SQL side belongs to history
func (s *hybridStore) EnsureSchema(ctx context.Context) error {
	if s.ch == nil {
		return nil
	}
	rows, err := s.ch.Query(ctx, ddl)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "stats: ensure schema")
	}
	return rows.Close()
}

// InsertEvent appends one event to ClickHouse; without it this is a no-op
// since the history row already carries the same facts
func (s *hybridStore) InsertEvent(ctx context.Context, e domain.Event) error {
	if s.ch == nil {
		return nil
	}
	var fb uint8
	if e.Fallback {
		fb = 1
	}
	row := []any{
		e.CreatedAt.UTC(), e.Style, e.APIUsed, fb,
		e.AIProbability, e.ProcessingTime, uint32(max(e.InputChars, 0)), uint32(max(e.OutputChars, 0)),
	}
	if err := s.ch.Insert(ctx, EventsTable, [][]any{row}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "stats: insert event")
	}
	return nil
}

// ByStyle prefers ClickHouse and falls back to the history table
func (s *hybridStore) ByStyle(ctx context.Context, since time.Time) ([]RowByStyle, string, error) {
	switch {
	case s.ch != nil:
		out, err := s.chByStyle(ctx, since)
		return out, SourceClickhouse, err
	case s.sql != nil:
		out, err := s.sqlByStyle(ctx, since)
		return out, SourceHistory, err
	}
	return nil, "", perr.Unavailablef("stats: no analytics store configured")
}

func (s *hybridStore) chByStyle(ctx context.Context, since time.Time) ([]RowByStyle, error) {
	const sql = `
		SELECT
			style,
			toInt64(count())             AS total,
			toInt64(sum(fallback))       AS fallbacks,
			toFloat64(sum(ai_probability))  AS sum_ai,
			toFloat64(sum(processing_time)) AS sum_time
		FROM ` + EventsTable + `
		WHERE created_at >= ?
		GROUP BY style
		ORDER BY style ASC`
	rows, err := s.ch.Query(ctx, sql, since.UTC())
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "stats: clickhouse by style")
	}
	return collect(rows)
}

func (s *hybridStore) sqlByStyle(ctx context.Context, since time.Time) ([]RowByStyle, error) {
	const cols = `style,
		COUNT(*),
		COALESCE(SUM(CASE WHEN api_used = 'fallback' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(ai_probability), 0),
		COALESCE(SUM(processing_time), 0)
		FROM processing_history`

	var rows repokit.Rows
	var err error
	if s.d == repokit.SQLite {
		rows, err = s.sql.Query(ctx, `SELECT `+cols+` WHERE created_at >= ? GROUP BY style ORDER BY style`,
			since.UTC().Format(time.DateTime))
	} else {
		rows, err = s.sql.Query(ctx, `SELECT `+cols+` WHERE created_at >= $1 GROUP BY style ORDER BY style`, since)
	}
	if err != nil {
		return nil, perr.FromDB(err, "stats: history by style")
	}
	return collect(rows)
}

func collect(rows repokit.Rows) (out []RowByStyle, err error) {
	defer func() {
		if cerr := rows.Close(); err == nil {
			err = cerr
		}
	}()
	for rows.Next() {
		var r RowByStyle
		if err := rows.Scan(&r.Style, &r.Total, &r.Fallbacks, &r.SumAIProbability, &r.SumProcessingTime); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
