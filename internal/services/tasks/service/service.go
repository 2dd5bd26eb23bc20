// Package service implements async task submission and the lease worker
package service

import (
	"context"
	"time"

	perr "textpolish/internal/platform/errors"

	pdom "textpolish/internal/services/api/polish/domain"
	"textpolish/internal/services/tasks/domain"

	"github.com/google/uuid"
)

// Service implements both submit and worker ports
type Service interface {
	domain.SubmitPort
	domain.WorkerPort
}

// Config controls the worker
type Config struct {
	Concurrency    int
	QueueTakeBatch int
	Lease          time.Duration
	MaxAttempts    int
	Poll           time.Duration
	// WorkerID tags leases; a random id is used when empty
	WorkerID string
}

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.QueueTakeBatch <= 0 {
		c.QueueTakeBatch = 16
	}
	if c.Lease <= 0 {
		c.Lease = 2 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.Poll <= 0 {
		c.Poll = 500 * time.Millisecond
	}
	if c.WorkerID == "" {
		c.WorkerID = "worker-" + uuid.NewString()
	}
	return c
}

// Svc implements the task service
type Svc struct {
	q    domain.Queue
	proc pdom.ProcessorPort
	cfg  Config
}

// New constructs the service over queue q and pipeline proc
func New(q domain.Queue, proc pdom.ProcessorPort, cfg Config) *Svc {
	if q == nil || proc == nil {
		panic("tasks.Service requires a queue and a processor")
	}
	return &Svc{q: q, proc: proc, cfg: cfg.withDefaults()}
}

// Config returns the effective worker config
func (s *Svc) Config() Config { return s.cfg }

// EnsureSchema prepares the queue storage
func (s *Svc) EnsureSchema(ctx context.Context) error { return s.q.EnsureSchema(ctx) }

// Submit validates like the synchronous path and enqueues
func (s *Svc) Submit(ctx context.Context, in pdom.TextRequest) (domain.Accepted, error) {
	req, err := s.proc.Validate(in)
	if err != nil {
		return domain.Accepted{}, err
	}
	t := domain.Task{ID: uuid.NewString(), Status: domain.StatusPending, Request: req}
	if err := s.q.Enqueue(ctx, t); err != nil {
		return domain.Accepted{}, err
	}
	return domain.Accepted{TaskID: t.ID, Status: domain.StatusProcessing, Message: domain.MsgSubmitted}, nil
}

// Status reports a task. Ids that are not uuids are simply unknown.
func (s *Svc) Status(ctx context.Context, id string) (domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	t, err := s.q.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	return t.WithMessage(), nil
}
