package domain

import "context"

// RecorderPort receives one event per processed text
type RecorderPort interface {
	Record(ctx context.Context, e Event) error
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	RecorderPort
	Summary(ctx context.Context, in SummaryInput) (Summary, error)
}
