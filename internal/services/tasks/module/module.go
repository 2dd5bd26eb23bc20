// Package module wires the task queue and worker and exposes its ports
package module

import (
	"context"

	"textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/modkit/repokit"
	"textpolish/internal/platform/logger"

	pdom "textpolish/internal/services/api/polish/domain"
	"textpolish/internal/services/tasks/domain"
	"textpolish/internal/services/tasks/repo"
	"textpolish/internal/services/tasks/service"
)

// Ports holds the ports exposed by the tasks module. Both are nil when no
// backend is available.
type Ports struct {
	Worker    domain.WorkerPort
	Submitter domain.SubmitPort
}

// Module defines the task queue module
type Module struct {
	svc     *service.Svc
	ports   Ports
	backend string
}

// New constructs the module over the polish pipeline proc. The backend is
// TASKS_BACKEND, or Redis when configured and Postgres otherwise.
func New(deps modkit.Deps, proc pdom.ProcessorPort, overrides Options) *Module {
	opts := FromConfig(deps.Cfg).merge(overrides)

	m := &Module{}
	q, backend := queueFor(deps, opts)
	if q == nil {
		logger.Named("tasks").Warn().Str("backend", opts.Backend).Msg("task queue disabled: backend not configured")
		return m
	}
	m.backend = backend
	m.svc = service.New(q, proc, service.Config{
		Concurrency:    opts.Concurrency,
		QueueTakeBatch: opts.QueueTakeBatch,
		Lease:          opts.Lease,
		MaxAttempts:    opts.MaxAttempts,
		Poll:           opts.Poll,
	})
	m.ports = Ports{Worker: m.svc, Submitter: m.svc}
	return m
}

func queueFor(deps modkit.Deps, opts Options) (domain.Queue, string) {
	useRedis := opts.Backend == BackendRedis || (opts.Backend == BackendAuto && deps.Redis != nil)
	switch {
	case useRedis && deps.Redis != nil:
		return repo.NewRedis(deps.Redis, opts.KeyPrefix, opts.ResultTTL), BackendRedis
	case !useRedis && deps.PG != nil:
		return repo.NewPG(repokit.WithBeginHooks(deps.PG, repokit.LockTimeout(opts.LockTimeout))), BackendPG
	}
	return nil, ""
}

// Enabled reports whether a backend is wired
func (m *Module) Enabled() bool { return m.svc != nil }

// Backend names the active backend, empty when disabled
func (m *Module) Backend() string { return m.backend }

// Service returns the task service, nil when disabled
func (m *Module) Service() *service.Svc { return m.svc }

// EnsureSchema prepares the queue storage
func (m *Module) EnsureSchema(ctx context.Context) error {
	if m.svc == nil {
		return nil
	}
	return m.svc.EnsureSchema(ctx)
}

// Ports returns the module ports (Worker, Submitter)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "tasks" }

// Prefix returns the module route prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes; see services/api/tasks
func (m *Module) MountRoutes(_ httpkit.Router) {}
