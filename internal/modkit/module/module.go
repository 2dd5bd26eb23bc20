// Package module holds the module contract and the bootstrap port registry.
// It sits beside modkit so a module can export its own ports type without
// an import cycle.
package module

import (
	phttp "textpolish/internal/platform/net/http"
)

// Module is the contract the API composes
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
