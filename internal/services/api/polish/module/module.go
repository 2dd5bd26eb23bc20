// Package module wires text polishing into the API using modkit
package module

import (
	modkit "textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"

	hdom "textpolish/internal/services/api/history/domain"
	phttp "textpolish/internal/services/api/polish/http"
	psvc "textpolish/internal/services/api/polish/service"
	sdom "textpolish/internal/services/api/stats/domain"
)

// Ports declares the optional collaborators injected with modkit.WithPorts
type Ports struct {
	History  hdom.AppenderPort
	Recorder sdom.RecorderPort
}

// Module implements the polish API module. Routes mount on the API root.
type Module struct {
	modkit.Base
	svc psvc.Service
}

// New constructs the polish module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("polish"), modkit.WithPrefix("")}, opts...)...)
	in, _ := modkit.InjectedPorts[Ports](b)

	svc := psvc.New(psvc.ConfigFromEnv(deps.Cfg), deps.PolisherOrFallback(),
		psvc.WithHistory(in.History),
		psvc.WithRecorder(in.Recorder),
	)

	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, svc, func(r httpkit.Router) { phttp.Register(r, m.svc) })
	return m
}
