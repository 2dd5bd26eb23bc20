package domain

import "context"

// AppenderPort is the write side the polish pipeline uses
type AppenderPort interface {
	Append(ctx context.Context, e Entry) (int64, error)
}

// ServicePort is consumed by handlers
type ServicePort interface {
	AppenderPort
	List(ctx context.Context, in ListInput) ([]Record, int, error)
	Get(ctx context.Context, id int64) (Record, error)
}
