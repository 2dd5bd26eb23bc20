// Package module wires the processing history into the API using modkit
package module

import (
	"context"

	modkit "textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"

	"textpolish/internal/services/api/history/domain"
	hhttp "textpolish/internal/services/api/history/http"
	hrepo "textpolish/internal/services/api/history/repo"
	hsvc "textpolish/internal/services/api/history/service"
)

// Module implements the history module. Without a SQL store it is mounted
// disabled: routes answer 503 and no ports are exported.
type Module struct {
	modkit.Base
	svc *hsvc.Svc
}

// New constructs the history module on Postgres, else SQLite
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("history"), modkit.WithPrefix("/history")}, opts...)...)

	m := &Module{}
	var ports any
	var svc domain.ServicePort = disabled{}
	if db, dialect := deps.SQL(); db != nil {
		m.svc = hsvc.New(db, hrepo.New(repokit.Dialect(dialect)))
		ports, svc = m.svc, m.svc
	}
	m.Base = modkit.NewBase(b, ports, func(r httpkit.Router) { hhttp.Register(r, svc) })
	return m
}

// Enabled reports whether a SQL store backs the module
func (m *Module) Enabled() bool { return m.svc != nil }

// EnsureSchema creates the history table when enabled
func (m *Module) EnsureSchema(ctx context.Context) error {
	if m.svc == nil {
		return nil
	}
	return m.svc.EnsureSchema(ctx)
}

type disabled struct{}

func errDisabled() error { return perr.Unavailablef("history is disabled: no database configured") }

func (disabled) Append(context.Context, domain.Entry) (int64, error) { return 0, errDisabled() }

func (disabled) List(context.Context, domain.ListInput) ([]domain.Record, int, error) {
	return nil, 0, errDisabled()
}

func (disabled) Get(context.Context, int64) (domain.Record, error) { return domain.Record{}, errDisabled() }
