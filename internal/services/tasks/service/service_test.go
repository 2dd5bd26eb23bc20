package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"textpolish/internal/core/polish"
	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/logger"
	kit "textpolish/internal/platform/testkit"

	pdom "textpolish/internal/services/api/polish/domain"
	psvc "textpolish/internal/services/api/polish/service"
	"textpolish/internal/services/tasks/domain"

	"github.com/rs/zerolog"
)

type memQueue struct {
	mu          sync.Mutex
	order       []string
	tasks       map[string]*domain.Task
	completeErr error
}

func newMem() *memQueue { return &memQueue{tasks: map[string]*domain.Task{}} }

func (m *memQueue) EnsureSchema(context.Context) error { return nil }

func (m *memQueue) Enqueue(_ context.Context, t domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = append(m.order, t.ID)
	m.tasks[t.ID] = &t
	return nil
}

func (m *memQueue) Get(_ context.Context, id string) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	return *t, nil
}

func (m *memQueue) Lease(_ context.Context, _ string, limit int, _ time.Duration, _ int) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, id := range m.order {
		if len(out) == limit {
			break
		}
		if t := m.tasks[id]; t.Status == domain.StatusPending {
			t.Status = domain.StatusProcessing
			t.Attempts++
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memQueue) Complete(_ context.Context, id string, res pdom.ProcessResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completeErr != nil {
		return m.completeErr
	}
	if m.tasks[id].Status.Done() {
		return perr.Conflictf("task %s is already finished", id)
	}
	m.tasks[id].Status, m.tasks[id].Result = domain.StatusCompleted, &res
	return nil
}

func (m *memQueue) Fail(_ context.Context, id string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks[id].Status.Done() {
		return perr.Conflictf("task %s is already finished", id)
	}
	m.tasks[id].Status, m.tasks[id].Error = domain.StatusFailed, reason
	return nil
}

type stubProc struct{ fail string }

func (p stubProc) Validate(in pdom.TextRequest) (pdom.TextRequest, error) {
	if in.Content == "" {
		return in, perr.WithField(perr.Validationf("content is required"), "content")
	}
	if in.Style == "" {
		in.Style = "academic"
	}
	return in, nil
}

func (p stubProc) Process(_ context.Context, in pdom.TextRequest) (pdom.ProcessResult, error) {
	if in.Content == p.fail {
		return pdom.ProcessResult{}, errors.New("pipeline broke")
	}
	return pdom.ProcessResult{OriginalText: in.Content, ProcessedText: "[学术润色] " + in.Content, StyleUsed: in.Style, APIUsed: "fallback"}, nil
}

func TestSubmitAndStatus(t *testing.T) {
	q := newMem()
	s := New(q, stubProc{}, Config{})
	ctx := context.Background()

	acc, err := s.Submit(ctx, pdom.TextRequest{Content: "人工智能"})
	if err != nil {
		t.Fatal(err)
	}
	if acc.Status != domain.StatusProcessing || acc.Message != domain.MsgSubmitted || acc.TaskID == "" {
		t.Fatalf("accepted = %+v", acc)
	}

	st, err := s.Status(ctx, acc.TaskID)
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != domain.StatusPending || st.Message != domain.MsgPending || st.Request.Style != "academic" {
		t.Fatalf("status = %+v", st)
	}
}

func TestSubmitValidates(t *testing.T) {
	q := newMem()
	s := New(q, stubProc{}, Config{})
	_, err := s.Submit(context.Background(), pdom.TextRequest{})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if len(q.order) != 0 {
		t.Fatal("invalid input must not be queued")
	}
}

func TestStylePolicyMatchesSync(t *testing.T) {
	proc := psvc.New(psvc.Config{}, polish.New(nil, polish.Options{}))
	s := New(newMem(), proc, Config{})
	ctx := context.Background()

	for _, style := range []string{"", "academic", "creative", "poetic", "ACADEMIC "} {
		req := pdom.TextRequest{Content: "人工智能技术在学术写作中的应用越来越广泛。", Style: style}
		_, syncErr := proc.Process(ctx, req)
		_, asyncErr := s.Submit(ctx, req)
		if perr.IsCode(syncErr, perr.ErrorCodeValidation) != perr.IsCode(asyncErr, perr.ErrorCodeValidation) {
			t.Fatalf("style %q: sync err %v, async err %v", style, syncErr, asyncErr)
		}
	}
	if _, err := s.Submit(ctx, pdom.TextRequest{Content: "x", Style: "poetic"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("unknown style accepted: %v", err)
	}
}

func TestStatusUnknown(t *testing.T) {
	s := New(newMem(), stubProc{}, Config{})
	for _, id := range []string{"nope", "3f0c8a0e-6a0b-4b8f-9d55-2a1f0c1f9b7e"} {
		if _, err := s.Status(context.Background(), id); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("%s: err = %v", id, err)
		}
	}
}

func TestDrainCompletesAndFails(t *testing.T) {
	q := newMem()
	s := New(q, stubProc{fail: "坏"}, Config{QueueTakeBatch: 1})
	ctx := context.Background()

	ok, _ := s.Submit(ctx, pdom.TextRequest{Content: "好"})
	bad, _ := s.Submit(ctx, pdom.TextRequest{Content: "坏"})

	n, err := s.Drain(ctx)
	if err != nil || n != 2 {
		t.Fatalf("drain = %d %v", n, err)
	}

	done, _ := s.Status(ctx, ok.TaskID)
	if done.Status != domain.StatusCompleted || done.Result == nil || done.Result.ProcessedText != "[学术润色] 好" || done.Message != "" {
		t.Fatalf("done = %+v", done)
	}
	failed, _ := s.Status(ctx, bad.TaskID)
	if failed.Status != domain.StatusFailed || failed.Error != "pipeline broke" || failed.Result != nil {
		t.Fatalf("failed = %+v", failed)
	}
}

func TestHandleKeepsFirstOutcome(t *testing.T) {
	q := newMem()
	s := New(q, stubProc{fail: "坏"}, Config{})
	ctx := context.Background()

	ok, _ := s.Submit(ctx, pdom.TextRequest{Content: "好"})
	bad, _ := s.Submit(ctx, pdom.TextRequest{Content: "坏"})
	leased, _ := q.Lease(ctx, "w1", 2, time.Minute, 3)

	// another worker finished both while this lease was outstanding
	_ = q.Fail(ctx, ok.TaskID, "lease expired after max attempts")
	_ = q.Complete(ctx, bad.TaskID, pdom.ProcessResult{ProcessedText: "done elsewhere"})

	for _, task := range leased {
		if err := s.handle(ctx, task); err != nil && task.ID == ok.TaskID {
			t.Fatalf("late completion: %v", err)
		}
	}

	first, _ := s.Status(ctx, ok.TaskID)
	if first.Status != domain.StatusFailed || first.Result != nil {
		t.Fatalf("first = %+v", first)
	}
	second, _ := s.Status(ctx, bad.TaskID)
	if second.Status != domain.StatusCompleted || second.Error != "" {
		t.Fatalf("second = %+v", second)
	}
}

func TestDrainLogsStoreErrors(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	kit.Swap(t, &workerLog, func() *logger.Logger { return &l })

	q := newMem()
	q.completeErr = perr.Wrap(errors.New("connection reset"), perr.ErrorCodeDB, "tasks: finish")
	s := New(q, stubProc{}, Config{})
	ctx := context.Background()

	acc, _ := s.Submit(ctx, pdom.TextRequest{Content: "好"})
	n, err := s.Drain(ctx)
	if err != nil || n != 1 {
		t.Fatalf("drain = %d %v", n, err)
	}
	out := buf.String()
	kit.MustContain(t, out, acc.TaskID)
	kit.MustContain(t, out, "connection reset")

	st, _ := s.Status(ctx, acc.TaskID)
	if st.Status != domain.StatusProcessing {
		t.Fatalf("unstored task status = %s", st.Status)
	}
}

func TestRunProcessesUntilCanceled(t *testing.T) {
	q := newMem()
	s := New(q, stubProc{}, Config{Concurrency: 2, Poll: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ids []string
	for _, c := range []string{"一", "二", "三"} {
		acc, err := s.Submit(ctx, pdom.TextRequest{Content: c})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, acc.TaskID)
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for {
		finished := 0
		for _, id := range ids {
			if st, _ := s.Status(ctx, id); st.Status == domain.StatusCompleted {
				finished++
			}
		}
		if finished == len(ids) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d of %d finished", finished, len(ids))
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("run = %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.Concurrency != 4 || c.Lease != 2*time.Minute || c.MaxAttempts != 3 || c.WorkerID == "" {
		t.Fatalf("cfg = %+v", c)
	}
}
