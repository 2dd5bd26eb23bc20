// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"textpolish/internal/core/polish"
	modkit "textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"

	metahttp "textpolish/internal/services/api/meta/http"
)

// ServiceName is reported by health, version and service
const ServiceName = "textpolish-api"

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{startedAt: time.Now()}

	pingers := make(map[string]metahttp.Pinger, len(deps.Pingers))
	for n, p := range deps.Pingers {
		pingers[n] = p
	}
	p := deps.PolisherOrFallback()
	d := metahttp.Deps{
		ServiceName:  ServiceName,
		StartedAt:    m.startedAt,
		Pingers:      pingers,
		Provider:     p.Provider(),
		FallbackOnly: !p.Remote(),
		Styles:       polish.StyleIDs(),
	}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) { metahttp.Register(r, d) })
	return m
}
