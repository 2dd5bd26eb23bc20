// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"sort"
	"sync"
	"time"

	"textpolish/internal/core/version"
	"textpolish/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Pingers are probed by /ready, keyed by backend name
	Pingers map[string]Pinger
	// Provider labels the remote generator, "fallback" when none is configured
	Provider     string
	FallbackOnly bool
	Styles       []string
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Status  string `json:"status"   example:"healthy"`
	Service string `json:"service"  example:"textpolish-api"`
	Version string `json:"version"  example:"1.0.0"`
	Started string `json:"started"  example:"2026-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2026-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name         string   `json:"name"          example:"textpolish-api"`
	Started      string   `json:"started"       example:"2026-09-03T13:00:00Z"`
	Uptime       int64    `json:"uptime"        example:"300"`
	Provider     string   `json:"provider"      example:"deepseek"`
	FallbackOnly bool     `json:"fallback_only" example:"false"`
	Styles       []string `json:"styles"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Status:  "healthy",
		Service: h.deps.ServiceName,
		Version: version.Version(),
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps.Pingers))
	for n := range h.deps.Pingers {
		names = append(names, n)
	}
	sort.Strings(names)

	checks := make([]ReadyCheck, len(names))
	var wg sync.WaitGroup
	for i, n := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = ReadyCheck{Name: n, Status: "ok"}
			if err := h.deps.Pingers[n].Ping(ctx); err != nil {
				checks[i] = ReadyCheck{Name: n, Status: "fail", Error: err.Error()}
			}
		}()
	}
	wg.Wait()

	overall := "ok"
	for _, c := range checks {
		if c.Status != "ok" {
			overall = "fail"
		}
	}
	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime and the active generator
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:         h.deps.ServiceName,
		Started:      h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:       int64(uptime / time.Second),
		Provider:     h.deps.Provider,
		FallbackOnly: h.deps.FallbackOnly,
		Styles:       h.deps.Styles,
	}, nil
}
