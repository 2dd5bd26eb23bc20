package store

import (
	"context"
	"strings"
	"time"

	"textpolish/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	Backend string
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives statement events from the SQL adapters
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// LogTracer logs every statement at debug level, slow ones at warn and
// failures at error. It pins its own level so LOG_SQL works under LOG_LEVEL=info.
func LogTracer(root logger.Logger) QueryTracer {
	return logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "sql").Logger()}
}

type logTracer struct{ log logger.Logger }

func (t logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := t.log.Debug()
	switch {
	case ev.Err != nil:
		evt = t.log.Error().Err(ev.Err)
	case ev.Slow:
		evt = t.log.Warn()
	}
	evt.Str("backend", ev.Backend).
		Float64("elapsed_ms", float64(ev.Elapsed.Microseconds())/1000).
		Bool("slow", ev.Slow).
		Str("sql", squash(ev.SQL)).
		Int("args", len(ev.Args)).
		Msg("sql query")
}

// squash collapses runs of whitespace so multi-line SQL logs on one line
func squash(s string) string { return strings.Join(strings.Fields(s), " ") }

// tracing wraps a tracer with a backend name and slow threshold
type tracing struct {
	backend string
	tracer  QueryTracer
	slow    time.Duration
}

func (t tracing) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	d := time.Since(start)
	t.tracer.OnQuery(ctx, QueryEvent{
		Backend: t.backend,
		SQL:     sql,
		Args:    args,
		Elapsed: d,
		Err:     err,
		Slow:    t.slow > 0 && d >= t.slow,
	})
}
