package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "textpolish/internal/platform/net/http"
	"textpolish/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_Disabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, false, "")
	if rec := get(t, r.Mux(), "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestMount_ServesDecoratedSpec(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string {
		return `{"swagger":"2.0","info":{"title":"x"},"paths":{"/process":{"post":{"responses":{"200":{}}}}}}`
	})
	testkit.Swap(t, &mutators, nil)
	Register(func(spec map[string]any) { spec["x-mutated"] = true })

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true, "textpolish API")

	if rec := get(t, r.Mux(), "/api/docs"); rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect code = %d", rec.Code)
	}

	rec := get(t, r.Mux(), "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version not lifted: %v", spec["openapi"])
	}
	if spec["x-mutated"] != true {
		t.Fatal("mutator not applied")
	}
	if spec["info"].(map[string]any)["title"] != "textpolish API" {
		t.Fatalf("title = %v", spec["info"])
	}
	op := spec["paths"].(map[string]any)["/process"].(map[string]any)["post"].(map[string]any)
	resps := op["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("missing %s response: %v", code, resps)
		}
	}
}

func TestMount_BrokenSpec(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true, "")
	if rec := get(t, r.Mux(), "/api/docs/doc.json"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestRealDocParses(t *testing.T) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		t.Fatalf("generated doc is not JSON: %v", err)
	}
	if _, ok := spec["paths"].(map[string]any)["/process"]; !ok {
		t.Fatal("doc should describe /process")
	}
}
