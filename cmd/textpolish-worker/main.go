// Command textpolish-worker leases queued polish tasks and runs them through
// the same pipeline as the synchronous API
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"textpolish/internal/adapters/llm"
	"textpolish/internal/modkit"
	"textpolish/internal/modkit/module"
	"textpolish/internal/modkit/repokit"
	"textpolish/internal/platform/config"
	"textpolish/internal/platform/logger"
	"textpolish/internal/platform/store"

	"textpolish/internal/services/api"
	tasksmod "textpolish/internal/services/tasks/module"
)

func main() {
	var (
		fConc    = flag.Int("concurrency", 0, "worker concurrency (default TASKS_WORKER_CONCURRENCY or 4)")
		fBatch   = flag.Int("batch", 0, "lease batch size per poll")
		fLease   = flag.Duration("lease", 0, "lease duration before a task is handed to another worker")
		fMaxAtt  = flag.Int("max_attempts", 0, "leases before a task is failed")
		fBackend = flag.String("backend", "", "pg or redis (default TASKS_BACKEND, else redis when configured)")
		fOnce    = flag.Bool("once", false, "drain the queue once and exit")
	)
	flag.Parse()

	if _, err := config.LoadDotenv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env failed")
	}
	root := config.New()
	l := logger.Named("worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "worker"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	polisher, gen, err := llm.NewPolisher(ctx, llm.ConfigFromEnv(root))
	if err != nil {
		l.Panic().Err(err).Msg("llm setup failed")
	}
	if c, ok := gen.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	deps := modkit.DepsFrom(*l, root, st)
	deps.Polisher = polisher

	// the same graph the API mounts: history, stats and polish feed the worker
	g := api.Build(deps, tasksmod.Options{
		Backend:        *fBackend,
		Concurrency:    *fConc,
		QueueTakeBatch: *fBatch,
		Lease:          *fLease,
		MaxAttempts:    *fMaxAtt,
	})
	if err := g.EnsureSchema(ctx); err != nil {
		l.Panic().Err(err).Msg("ensure schema failed")
	}
	if !g.Tasks.Enabled() {
		l.Fatal().Msg("no task backend: set SERVICE_PGSQL_DBURL or SERVICE_REDIS_URL")
	}
	repokit.MustPing(ctx, g.Tasks.Backend(), st.Pingers()[g.Tasks.Backend()])
	module.Register(g.Tasks.Name(), g.Tasks.Ports())
	svc := g.Tasks.Service()
	l.Info().Str("backend", g.Tasks.Backend()).Str("provider", polisher.Provider()).Msg("task worker ready")

	if *fOnce {
		n, err := svc.Drain(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("drain failed")
		}
		l.Info().Int("tasks", n).Msg("queue drained")
		return
	}

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("task worker failed")
	}
}
