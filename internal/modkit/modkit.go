// Package modkit wires API modules: shared deps, build options and a
// Base that mounts a module's routes under its prefix
package modkit

import (
	phttp "textpolish/internal/platform/net/http"
)

// Module is what the API mounts
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports returns the module's port set for cross wiring, nil if none
	Ports() any
	Name() string
}

// Builder constructs a Module from deps and options
type Builder func(Deps, ...Option) Module
