// @title         textpolish API
// @version       1.0.0
// @description   Style polishing and AI likelihood scoring for Chinese academic text
// @BasePath      /api/v1

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"textpolish/internal/adapters/llm"
	"textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/modkit/repokit"
	"textpolish/internal/platform/config"
	"textpolish/internal/platform/logger"
	phttp "textpolish/internal/platform/net/http"
	"textpolish/internal/platform/store"

	"textpolish/internal/services/api"
)

func main() {
	// .env first so every reader below sees it
	loaded, dotErr := config.LoadDotenv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()
	if dotErr != nil {
		l.Panic().Err(dotErr).Msg("load .env failed")
	}
	if len(loaded) > 0 {
		l.Info().Strs("files", loaded).Msg("dotenv loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// every backend is optional; only those configured are opened
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if apiCfg.MayBool("STRICT_DEPS", false) {
		repokit.MustGuard(ctx, st)
	}

	polisher, gen, err := llm.NewPolisher(ctx, llm.ConfigFromEnv(root))
	if err != nil {
		l.Panic().Err(err).Msg("llm setup failed")
	}
	if c, ok := gen.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	l.Info().Str("provider", polisher.Provider()).Bool("remote", polisher.Remote()).Msg("polisher ready")

	deps := modkit.DepsFrom(*l, root, st)
	deps.Polisher = polisher

	// http server (reads CORE_API_API_PORT etc)
	srv := phttp.NewServer(apiCfg)

	g, err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         apiCfg,
		Deps:           deps,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Stack: httpkit.StackOptions{
			CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 0),
		},
	})
	if err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	// optional in-process worker for single binary deployments
	if apiCfg.MayBool("INPROC_WORKER", false) {
		if g.Tasks.Enabled() {
			go func() {
				if err := g.Tasks.Service().Run(ctx); err != nil && ctx.Err() == nil {
					l.Error().Err(err).Msg("in-process worker stopped")
				}
			}()
		} else {
			l.Warn().Msg("CORE_API_INPROC_WORKER set but no task backend is configured")
		}
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
