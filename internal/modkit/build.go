package modkit

import (
	"net/http"

	phttp "textpolish/internal/platform/net/http"
	str "textpolish/internal/platform/strings"
)

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// InjectedPorts returns the ports passed with WithPorts as T
func InjectedPorts[T any](b Built) (T, bool) {
	p, ok := b.Ports.(T)
	return p, ok
}

// Base implements Module for the common case. Modules embed it and set
// Routes to their handler registration.
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	extra  func(phttp.Router)
	ports  any

	// Routes registers the module's own endpoints
	Routes func(phttp.Router)
}

// NewBase builds a Base from defaults followed by caller opts
func NewBase(b Built, ports any, routes func(phttp.Router)) Base {
	return Base{
		name:   b.Name,
		prefix: str.Prefix(b.Prefix),
		mws:    b.Mw,
		extra:  b.Register,
		ports:  ports,
		Routes: routes,
	}
}

// MountRoutes mounts under the prefix, or in a group when there is none
func (m Base) MountRoutes(r phttp.Router) {
	mount := func(rr phttp.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		if m.Routes != nil {
			m.Routes(rr)
		}
		if m.extra != nil {
			m.extra(rr)
		}
	}
	if m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name returns the module name, panicking when unset
func (m Base) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the mount prefix, "" when grouped on the parent
func (m Base) Prefix() string { return m.prefix }

// Ports returns the module's own port set
func (m Base) Ports() any { return m.ports }
