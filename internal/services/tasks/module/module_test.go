package module

import (
	"context"
	"testing"
	"time"

	"textpolish/internal/modkit"
	"textpolish/internal/platform/config"

	pdom "textpolish/internal/services/api/polish/domain"
)

type nopProc struct{}

func (nopProc) Validate(in pdom.TextRequest) (pdom.TextRequest, error) { return in, nil }
func (nopProc) Process(context.Context, pdom.TextRequest) (pdom.ProcessResult, error) {
	return pdom.ProcessResult{}, nil
}

func TestFromConfig(t *testing.T) {
	t.Setenv("TASKS_BACKEND", "REDIS")
	t.Setenv("TASKS_LEASE", "90")
	t.Setenv("TASKS_MAX_ATTEMPTS", "5")

	o := FromConfig(config.New())
	if o.Backend != BackendRedis || o.Lease != 90*time.Second || o.MaxAttempts != 5 || o.Concurrency != 4 {
		t.Fatalf("opts = %+v", o)
	}
	m := o.merge(Options{Concurrency: 9})
	if m.Concurrency != 9 || m.MaxAttempts != 5 {
		t.Fatalf("merged = %+v", m)
	}
}

func TestDisabledWithoutBackend(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()}, nopProc{}, Options{})
	if m.Enabled() || m.Backend() != "" {
		t.Fatal("no backend should disable the module")
	}
	p := m.Ports().(Ports)
	if p.Worker != nil || p.Submitter != nil {
		t.Fatalf("ports = %+v", p)
	}
	if err := m.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
}
