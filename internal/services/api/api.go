// Package api provides the HTTP API for the application
package api

import (
	"context"
	"net/http"

	"textpolish/internal/core/version"
	"textpolish/internal/platform/config"
	phttp "textpolish/internal/platform/net/http"

	"textpolish/internal/modkit"
	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/modkit/module"
	"textpolish/internal/modkit/swaggerkit"

	hdom "textpolish/internal/services/api/history/domain"
	historymod "textpolish/internal/services/api/history/module"
	metamod "textpolish/internal/services/api/meta/module"
	pdom "textpolish/internal/services/api/polish/domain"
	polishmod "textpolish/internal/services/api/polish/module"
	statsmod "textpolish/internal/services/api/stats/module"
	apitasks "textpolish/internal/services/api/tasks/module"

	// Worker tasks module (owns the Submitter and Worker ports)
	workertasks "textpolish/internal/services/tasks/module"
)

// Banner is the root greeting
const Banner = "欢迎使用AI学术润色系统"

// Options are the API options
type Options struct {
	Config         config.Conf
	Deps           modkit.Deps
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// Graph is the wired module set. The worker binary builds the same graph
// without mounting it.
type Graph struct {
	History *historymod.Module
	Stats   *statsmod.Module
	Polish  modkit.Module
	Tasks   *workertasks.Module
	API     []module.Module
}

// Build constructs every module and cross wires their ports: history and
// stats feed polish, polish feeds the task queue, the queue feeds the async API.
// taskOpts override TASKS_* settings field by field.
func Build(deps modkit.Deps, taskOpts workertasks.Options) Graph {
	g := Graph{
		History: historymod.New(deps),
		Stats:   statsmod.New(deps),
	}

	appender, _ := module.PortsOf[hdom.AppenderPort](g.History)
	g.Polish = polishmod.New(deps, modkit.WithPorts(polishmod.Ports{
		History:  appender,
		Recorder: g.Stats.Recorder(),
	}))

	proc := module.MustPortsOf[pdom.ProcessorPort](g.Polish)
	g.Tasks = workertasks.New(deps, proc, taskOpts)
	tasksAPI := apitasks.New(deps, modkit.WithPorts(apitasks.Ports{
		Submitter: module.MustPortsOf[workertasks.Ports](g.Tasks).Submitter,
	}))

	g.API = []module.Module{
		metamod.New(deps),
		g.History,
		g.Stats,
		g.Polish,
		g.Tasks, // no routes; registered so its ports are discoverable
		tasksAPI,
	}
	return g
}

// EnsureSchema creates the tables of every enabled store
func (g Graph) EnsureSchema(ctx context.Context) error {
	for _, s := range []interface{ EnsureSchema(context.Context) error }{g.History, g.Stats, g.Tasks} {
		if err := s.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Mount builds the graph, applies schemas and mounts the API onto r
func Mount(ctx context.Context, r phttp.Router, opt Options) (Graph, error) {
	g := Build(opt.Deps, workertasks.Options{})
	if err := g.EnsureSchema(ctx); err != nil {
		return g, err
	}

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger, "")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	httpkit.Get(r, "/", root)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range g.API {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
	return g, nil
}

// RootResponse is the banner at /
type RootResponse struct {
	Message string `json:"message" example:"欢迎使用AI学术润色系统"`
	Docs    string `json:"docs"    example:"/api/docs/"`
	Version string `json:"version" example:"1.0.0"`
}

// swagger:route GET / Meta root
// @Summary Service banner
// @Tags Meta
// @Produce json
// @Success 200 {object} RootResponse "ok"
// @Router / [get]
func root(_ *http.Request) (any, error) {
	return RootResponse{Message: Banner, Docs: "/api/docs/", Version: version.Version()}, nil
}
