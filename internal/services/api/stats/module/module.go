// Package module wires stats into the API using modkit
package module

import (
	"context"

	modkit "textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"

	"textpolish/internal/services/api/stats/domain"
	statshttp "textpolish/internal/services/api/stats/http"
	statsrepo "textpolish/internal/services/api/stats/repo"
	statssvc "textpolish/internal/services/api/stats/service"
)

// Module implements the stats module
type Module struct {
	modkit.Base
	svc *statssvc.Svc
	ch  bool
}

// New constructs the stats module. It reads ClickHouse when enabled, else
// the SQL history; with neither the routes answer 503.
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/stats")}, opts...)...)

	m := &Module{ch: deps.CH != nil}
	var ports any
	var svc domain.ServicePort = disabled{}
	db, dialect := deps.SQL()
	if db != nil || deps.CH != nil {
		var q repokit.Queryer
		if db != nil {
			q = db
		}
		m.svc = statssvc.New(q, statsrepo.NewHybrid(deps.CH, repokit.Dialect(dialect)))
		ports, svc = m.svc, m.svc
	}
	m.Base = modkit.NewBase(b, ports, func(r httpkit.Router) { statshttp.Register(r, svc) })
	return m
}

// Recorder returns the event sink when ClickHouse is enabled, nil otherwise
func (m *Module) Recorder() domain.RecorderPort {
	if m.svc == nil || !m.ch {
		return nil
	}
	return m.svc
}

// EnsureSchema creates the event table when ClickHouse is enabled
func (m *Module) EnsureSchema(ctx context.Context) error {
	if m.svc == nil {
		return nil
	}
	return m.svc.EnsureSchema(ctx)
}

type disabled struct{}

func (disabled) Record(context.Context, domain.Event) error { return nil }

func (disabled) Summary(context.Context, domain.SummaryInput) (domain.Summary, error) {
	return domain.Summary{}, perr.Unavailablef("stats are disabled: no database configured")
}
