package middleware

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"textpolish/internal/platform/logger"
	phttp "textpolish/internal/platform/net/http"
	kit "textpolish/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestRecoverJSON(t *testing.T) {
	h := RequestID()(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "rid-9")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.RequestID != "rid-9" || env.Error != "internal server error" || env.Code == 0 {
		t.Fatalf("envelope = %+v", env)
	}
	if rec.Header().Get("X-Request-ID") != "rid-9" {
		t.Fatalf("request id header missing")
	}
}

func TestRecoverJSONAbortHandler(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))
	kit.MustPanic(t, func() { h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)) })
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &buf})

	r := chi.NewRouter()
	r.Use(RequestID(), LogContext(), AccessLog(AccessLogOptions{Slow: 5 * time.Millisecond, Skip: []string{"/health"}}))
	r.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write([]byte("done"))
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) })
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {})

	for _, p := range []string{"/slow", "/boom", "/health"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		req.Header.Set("X-Request-Id", "rid"+p)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if buf.Len() == 0 {
		t.Skip("root logger initialised elsewhere")
	}
	out := buf.String()
	kit.MustContain(t, out, `"path":"/slow"`)
	kit.MustContain(t, out, `"slow":true`)
	kit.MustContain(t, out, `"request_id":"rid/slow"`)
	kit.MustContain(t, out, `"status":502`)
	if strings.Contains(out, `"path":"/health"`) {
		t.Fatalf("skipped path was logged: %s", out)
	}
}

func TestWrappersCompose(t *testing.T) {
	r := chi.NewRouter()
	r.Use(
		RealIP(), RequestID(), NoCache(), Compress(flate.BestSpeed),
		Heartbeat("/api/v1/health"), RedirectSlashes(), Timeout(time.Second), Throttle(4),
		CORS(CORSOptions{}),
	)
	r.With(AllowContentType("application/json")).Post("/p", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("heartbeat = %d headers=%v", rec.Code, rec.Header())
	}

	req := httptest.NewRequest(http.MethodPost, "/p", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("content type gate = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodOptions, "/p", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("cors headers = %v", rec.Header())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p/", nil))
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("redirect slashes = %d", rec.Code)
	}
}
