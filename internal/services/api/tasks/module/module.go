// Package module wires async task endpoints into the API using modkit
package module

import (
	"context"

	modkit "textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"
	perr "textpolish/internal/platform/errors"

	pdom "textpolish/internal/services/api/polish/domain"
	thttp "textpolish/internal/services/api/tasks/http"
	"textpolish/internal/services/tasks/domain"
)

// Ports declares the submitter injected with modkit.WithPorts
type Ports struct {
	Submitter domain.SubmitPort
}

// Module implements the async task API module
type Module struct {
	modkit.Base
}

// New constructs the module. Without an injected submitter the routes
// answer 503.
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tasks-api"), modkit.WithPrefix("")}, opts...)...)
	in, _ := modkit.InjectedPorts[Ports](b)

	var svc domain.SubmitPort = disabled{}
	if in.Submitter != nil {
		svc = in.Submitter
	}
	m := &Module{}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) { thttp.Register(r, svc) })
	return m
}

type disabled struct{}

func (disabled) Submit(context.Context, pdom.TextRequest) (domain.Accepted, error) {
	return domain.Accepted{}, perr.Unavailablef("async processing is disabled: no task backend configured")
}

func (disabled) Status(context.Context, string) (domain.Task, error) {
	return domain.Task{}, perr.Unavailablef("async processing is disabled: no task backend configured")
}
