package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"textpolish/internal/modkit"
	perr "textpolish/internal/platform/errors"
	phttp "textpolish/internal/platform/net/http"

	pdom "textpolish/internal/services/api/polish/domain"
	"textpolish/internal/services/tasks/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSubmitter struct {
	tasks map[string]domain.Task
}

func (f *fakeSubmitter) Submit(_ context.Context, in pdom.TextRequest) (domain.Accepted, error) {
	if strings.TrimSpace(in.Content) == "" {
		return domain.Accepted{}, perr.WithField(perr.Validationf("content is required"), "content")
	}
	f.tasks["t1"] = domain.Task{ID: "t1", Status: domain.StatusPending, Request: in}
	return domain.Accepted{TaskID: "t1", Status: domain.StatusProcessing, Message: domain.MsgSubmitted}, nil
}

func (f *fakeSubmitter) Status(_ context.Context, id string) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	return t.WithMessage(), nil
}

func serve(opts ...modkit.Option) http.Handler {
	mux := chi.NewRouter()
	m := New(modkit.Deps{}, opts...)
	phttp.AdaptChi(mux).Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	d, _ := env.Data.(map[string]any)
	return rec.Code, d
}

func TestSubmitAndPoll(t *testing.T) {
	h := serve(modkit.WithPorts(Ports{Submitter: &fakeSubmitter{tasks: map[string]domain.Task{}}}))

	code, d := do(t, h, http.MethodPost, "/api/v1/process/async", `{"content":"人工智能"}`)
	if code != http.StatusOK || d["task_id"] != "t1" || d["status"] != "processing" || d["message"] != domain.MsgSubmitted {
		t.Fatalf("submit = %d %v", code, d)
	}

	code, d = do(t, h, http.MethodGet, "/api/v1/task/t1", "")
	if code != http.StatusOK || d["status"] != "pending" || d["message"] != domain.MsgPending {
		t.Fatalf("status = %d %v", code, d)
	}
	if _, leaked := d["request"]; leaked {
		t.Fatal("request payload must not be exposed")
	}

	if code, _ = do(t, h, http.MethodGet, "/api/v1/task/missing", ""); code != http.StatusNotFound {
		t.Fatalf("unknown = %d", code)
	}
	if code, _ = do(t, h, http.MethodPost, "/api/v1/process/async", `{"content":"   "}`); code != http.StatusBadRequest {
		t.Fatalf("blank = %d", code)
	}
}

func TestDisabled(t *testing.T) {
	h := serve()
	if code, _ := do(t, h, http.MethodPost, "/api/v1/process/async", `{"content":"x"}`); code != http.StatusServiceUnavailable {
		t.Fatalf("submit = %d", code)
	}
	if code, _ := do(t, h, http.MethodGet, "/api/v1/task/x", ""); code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", code)
	}
}
