package domain

import (
	"context"
	"time"

	pdom "textpolish/internal/services/api/polish/domain"
)

// Queue is the storage a task backend provides
type Queue interface {
	EnsureSchema(ctx context.Context) error
	Enqueue(ctx context.Context, t Task) error
	// Get returns perr.ErrorCodeNotFound for unknown ids
	Get(ctx context.Context, id string) (Task, error)
	// Lease claims up to limit pending or lease-expired tasks for leaseFor and
	// bumps their attempts. Expired tasks that already used maxAttempts are
	// failed instead of returned.
	Lease(ctx context.Context, workerID string, limit int, leaseFor time.Duration, maxAttempts int) ([]Task, error)
	// Complete and Fail finish a task once. A task already completed or failed
	// yields perr.ErrorCodeConflict and is left untouched.
	Complete(ctx context.Context, id string, res pdom.ProcessResult) error
	Fail(ctx context.Context, id string, reason string) error
}

// SubmitPort is consumed by the HTTP handlers
type SubmitPort interface {
	Submit(ctx context.Context, in pdom.TextRequest) (Accepted, error)
	Status(ctx context.Context, id string) (Task, error)
}

// WorkerPort runs the lease loop until ctx ends
type WorkerPort interface {
	Run(ctx context.Context) error
}
