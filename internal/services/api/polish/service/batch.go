package service

import (
	"context"
	"fmt"
	"sync"

	perr "textpolish/internal/platform/errors"

	"textpolish/internal/services/api/polish/domain"
)

// Batch processes up to BatchMax texts with at most BatchParallel in flight.
// Every item is validated before any is processed; results keep input order.
func (s *Svc) Batch(ctx context.Context, in []domain.TextRequest) (domain.BatchResult, error) {
	if len(in) == 0 || len(in) > s.cfg.BatchMax {
		return domain.BatchResult{}, perr.Validationf("batch must hold between 1 and %d texts, got %d", s.cfg.BatchMax, len(in))
	}

	reqs := make([]domain.TextRequest, len(in))
	for i := range in {
		r, err := s.Validate(in[i])
		if err != nil {
			field := ""
			if e, ok := perr.As(err); ok {
				field = e.Field()
			}
			return domain.BatchResult{}, perr.WithField(err, fmt.Sprintf("[%d].%s", i, field))
		}
		reqs[i] = r
	}

	items := make([]domain.BatchItem, len(reqs))
	sem := make(chan struct{}, s.cfg.BatchParallel)
	var wg sync.WaitGroup
	for i := range reqs {
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem; wg.Done() }()
			items[i] = domain.BatchItem{Index: i, ProcessResult: s.run(ctx, reqs[i])}
		}()
	}
	wg.Wait()

	out := domain.BatchResult{TotalCount: len(items), Results: items}
	for _, it := range items {
		out.TotalTime += it.ProcessingTime
	}
	return out, nil
}
