package domain

import (
	"context"

	"textpolish/internal/core/polish"
)

// ProcessorPort runs the polish pipeline; the task worker consumes it
type ProcessorPort interface {
	Validate(in TextRequest) (TextRequest, error)
	Process(ctx context.Context, in TextRequest) (ProcessResult, error)
}

// ServicePort is consumed by handlers
type ServicePort interface {
	ProcessorPort
	Detect(ctx context.Context, in TextRequest) (DetectResult, error)
	Batch(ctx context.Context, in []TextRequest) (BatchResult, error)
	Styles() []polish.StyleInfo
}
