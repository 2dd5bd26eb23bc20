package service

import (
	"context"
	"sync"
	"time"

	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/logger"
	pstrings "textpolish/internal/platform/strings"

	"textpolish/internal/services/tasks/domain"
)

var workerLog = func() *logger.Logger { return logger.Named("tasks-worker") }

// Run polls the queue, leasing a batch per tick and processing it with at most
// Concurrency tasks in flight. It returns ctx.Err() after in-flight tasks end.
func (s *Svc) Run(ctx context.Context) error {
	log := workerLog()
	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup
	defer wg.Wait()

	ticker := time.NewTicker(s.cfg.Poll)
	defer ticker.Stop()

	log.Info().Str("worker_id", s.cfg.WorkerID).Int("concurrency", s.cfg.Concurrency).
		Dur("lease", s.cfg.Lease).Msg("task worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		// lease at most the free slots
		free := s.cfg.Concurrency - len(sem)
		if free <= 0 {
			continue
		}
		tasks, err := s.q.Lease(ctx, s.cfg.WorkerID, min(free, s.cfg.QueueTakeBatch), s.cfg.Lease, s.cfg.MaxAttempts)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Msg("lease tasks failed")
			}
			continue
		}
		for i := range tasks {
			sem <- struct{}{}
			wg.Add(1)
			t := tasks[i]
			go func() {
				defer func() { <-sem; wg.Done() }()
				if err := s.handle(ctx, t); err != nil {
					log.Warn().Err(err).Str("task_id", t.ID).Msg("task failed")
				}
			}()
		}
	}
}

// handle runs one leased task through the pipeline. On shutdown the lease is
// left to expire so another worker picks the task up.
func (s *Svc) handle(ctx context.Context, t domain.Task) error {
	res, err := s.proc.Process(ctx, t.Request)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		if ferr := settled(ctx, t, s.q.Fail(ctx, t.ID, failReason(err))); ferr != nil {
			return ferr
		}
		return err
	}
	return settled(ctx, t, s.q.Complete(ctx, t.ID, res))
}

// settled drops the conflict raised when another worker already finished a
// task whose lease this one outlived
func settled(ctx context.Context, t domain.Task, err error) error {
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		return err
	}
	logger.C(ctx).Warn().Str("task_id", t.ID).Int("attempts", t.Attempts).
		Msg("task already finished by another lease, result dropped")
	return nil
}

// maxReasonRunes caps the error stored on a failed task
const maxReasonRunes = 500

func failReason(err error) string {
	msg := err.Error()
	if e, ok := perr.As(err); ok && e.Field() != "" {
		msg = e.Field() + ": " + msg
	}
	return pstrings.Clip(msg, maxReasonRunes)
}

// Drain processes whatever is leasable now, one task at a time, and returns
// the number handled. Per task errors are logged; a task whose outcome could
// not be stored stays leased and is retried once its lease expires.
func (s *Svc) Drain(ctx context.Context) (int, error) {
	log := workerLog()
	n := 0
	for {
		tasks, err := s.q.Lease(ctx, s.cfg.WorkerID, s.cfg.QueueTakeBatch, s.cfg.Lease, s.cfg.MaxAttempts)
		if err != nil || len(tasks) == 0 {
			return n, err
		}
		for _, t := range tasks {
			if err := s.handle(ctx, t); err != nil {
				if ctx.Err() != nil {
					return n, ctx.Err()
				}
				log.Warn().Err(err).Str("task_id", t.ID).Msg("task failed")
			}
			n++
		}
	}
}
