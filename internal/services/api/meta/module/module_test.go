package module

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"textpolish/internal/core/polish"
	"textpolish/internal/modkit"
	phttp "textpolish/internal/platform/net/http"
	"textpolish/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type namedGen struct{}

func (namedGen) Name() string { return "deepseek" }
func (namedGen) Generate(context.Context, polish.Prompt) (polish.Completion, error) {
	return polish.Completion{Text: "ok"}, nil
}

func get(t *testing.T, deps modkit.Deps, path string) map[string]any {
	t.Helper()
	mux := chi.NewRouter()
	m := New(deps)
	phttp.AdaptChi(mux).Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("%s: code = %d", path, rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	return env.Data.(map[string]any)
}

func TestHealthAndVersion(t *testing.T) {
	d := get(t, modkit.Deps{}, "/api/v1/meta/health")
	if d["ok"] != true || d["service"] != ServiceName || d["status"] != "healthy" {
		t.Fatalf("health = %v", d)
	}
	v := get(t, modkit.Deps{}, "/api/v1/meta/version")
	if v["service"] != ServiceName || v["version"] == "" {
		t.Fatalf("version = %v", v)
	}
}

func TestReady(t *testing.T) {
	deps := modkit.Deps{Pingers: map[string]store.Pinger{
		"redis":  pinger{},
		"pg":     pinger{err: errors.New("refused")},
		"sqlite": pinger{},
	}}
	d := get(t, deps, "/api/v1/meta/ready")
	if d["status"] != "fail" {
		t.Fatalf("ready = %v", d)
	}
	checks := d["checks"].([]any)
	if len(checks) != 3 {
		t.Fatalf("checks = %v", checks)
	}
	first := checks[0].(map[string]any)
	if first["name"] != "pg" || first["status"] != "fail" || first["error"] != "refused" {
		t.Fatalf("pg = %v", first)
	}

	ok := get(t, modkit.Deps{}, "/api/v1/meta/ready")
	if ok["status"] != "ok" {
		t.Fatalf("no backends = %v", ok)
	}
}

func TestServiceReportsProvider(t *testing.T) {
	fb := get(t, modkit.Deps{}, "/api/v1/meta/service")
	if fb["provider"] != polish.ProviderFallback || fb["fallback_only"] != true {
		t.Fatalf("fallback = %v", fb)
	}

	remote := get(t, modkit.Deps{Polisher: polish.New(namedGen{}, polish.Options{})}, "/api/v1/meta/service")
	if remote["provider"] != "deepseek" || remote["fallback_only"] != false || len(remote["styles"].([]any)) != 4 {
		t.Fatalf("remote = %v", remote)
	}
}
