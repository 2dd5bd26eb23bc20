package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"textpolish/internal/modkit"
	phttp "textpolish/internal/platform/net/http"
	"textpolish/internal/platform/store"

	"textpolish/internal/services/api/history/domain"

	"github.com/go-chi/chi/v5"
)

func serve(m *Module) http.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })
	return mux
}

func get(t *testing.T, h http.Handler, path string) (int, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, env
}

func TestDisabledWithoutDatabase(t *testing.T) {
	m := New(modkit.Deps{})
	if m.Enabled() || m.Ports() != nil {
		t.Fatalf("module without a store must be disabled with no ports")
	}
	if err := m.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	h := serve(m)
	for _, p := range []string{"/api/v1/history", "/api/v1/history/1"} {
		if code, _ := get(t, h, p); code != http.StatusServiceUnavailable {
			t.Fatalf("%s status = %d", p, code)
		}
	}
}

func TestSQLiteRoutes(t *testing.T) {
	ctx := context.Background()
	lite, err := store.OpenSQLite(ctx, ":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	m := New(modkit.Deps{Lite: lite})
	if err := m.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	app, ok := m.Ports().(domain.AppenderPort)
	if !ok {
		t.Fatalf("ports = %T", m.Ports())
	}
	id, err := app.Append(ctx, domain.Entry{UserID: "u1", OriginalText: "a", ProcessedText: "b", Style: "casual", APIUsed: "deepseek"})
	if err != nil {
		t.Fatal(err)
	}

	h := serve(m)
	code, env := get(t, h, "/api/v1/history?user_id=u1&page=1&page_size=5")
	if code != http.StatusOK || env.Page == nil || env.Page.Total != 1 || env.Page.PageSize != 5 {
		t.Fatalf("list = %d %+v", code, env)
	}

	code, _ = get(t, h, "/api/v1/history/"+strconv.FormatInt(id, 10))
	if code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	if code, _ = get(t, h, "/api/v1/history/999"); code != http.StatusNotFound {
		t.Fatalf("missing status = %d", code)
	}
	if code, _ = get(t, h, "/api/v1/history/abc"); code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", code)
	}
}
