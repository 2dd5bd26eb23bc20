// Package repo holds the task queue backends: Postgres and Redis
package repo

import (
	"context"
	"encoding/json"
	"time"

	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/store"

	pdom "textpolish/internal/services/api/polish/domain"
	"textpolish/internal/services/tasks/domain"
)

// ReasonLeaseExhausted is recorded when a task outlives its lease too often
const ReasonLeaseExhausted = "lease expired after max attempts"

// PG is the Postgres queue, leased with FOR UPDATE SKIP LOCKED
type PG struct {
	db repokit.TxRunner
}

// NewPG binds the queue to db. Lease runs in a transaction so begin hooks
// such as repokit.LockTimeout apply to it.
func NewPG(db repokit.TxRunner) *PG {
	if db == nil {
		panic("tasks.PG requires a non nil TxRunner")
	}
	return &PG{db: db}
}

var schemaPG = []string{
	`CREATE TABLE IF NOT EXISTS polish_tasks (
		task_id          UUID PRIMARY KEY,
		status           TEXT NOT NULL DEFAULT 'pending',
		request          JSONB NOT NULL,
		result           JSONB,
		error            TEXT NOT NULL DEFAULT '',
		attempts         INT NOT NULL DEFAULT 0,
		leased_by        TEXT,
		lease_expires_at TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS polish_tasks_ready_idx ON polish_tasks (status, created_at)`,
}

// EnsureSchema creates the queue table when missing
func (p *PG) EnsureSchema(ctx context.Context) error {
	for _, s := range schemaPG {
		if _, err := p.db.Exec(ctx, s); err != nil {
			return perr.FromDB(err, "tasks: ensure schema")
		}
	}
	return nil
}

// Enqueue inserts a pending task
func (p *PG) Enqueue(ctx context.Context, t domain.Task) error {
	req, err := json.Marshal(t.Request)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "tasks: encode request")
	}
	err = store.ExecOne(ctx, p.db,
		`INSERT INTO polish_tasks (task_id, status, request) VALUES ($1, 'pending', $2)`, t.ID, req)
	return perr.FromDB(err, "tasks: enqueue")
}

const columns = `task_id::text, status, request, result, error, attempts, created_at, updated_at`

// Get returns one task by id
func (p *PG) Get(ctx context.Context, id string) (domain.Task, error) {
	t, err := scanTask(p.db.QueryRow(ctx, `SELECT `+columns+` FROM polish_tasks WHERE task_id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return domain.Task{}, perr.NotFoundf("task %s not found", id)
		}
		return domain.Task{}, perr.FromDB(err, "tasks: get")
	}
	return t, nil
}

// Lease fails exhausted expired leases then claims up to limit ready tasks
func (p *PG) Lease(ctx context.Context, workerID string, limit int, leaseFor time.Duration, maxAttempts int) ([]domain.Task, error) {
	const exhaust = `
		UPDATE polish_tasks
		   SET status = 'failed', error = $2, leased_by = NULL, lease_expires_at = NULL, updated_at = now()
		 WHERE status = 'processing' AND lease_expires_at <= now() AND attempts >= $1`
	const lease = `
		WITH ready AS (
			SELECT task_id
			  FROM polish_tasks
			 WHERE status = 'pending'
			    OR (status = 'processing' AND lease_expires_at <= now() AND attempts < $3)
			 ORDER BY created_at ASC
			 LIMIT $1
			 FOR UPDATE SKIP LOCKED
		)
		UPDATE polish_tasks t
		   SET status = 'processing',
		       leased_by = $2,
		       lease_expires_at = now() + make_interval(secs => $4),
		       attempts = t.attempts + 1,
		       updated_at = now()
		  FROM ready
		 WHERE t.task_id = ready.task_id
		RETURNING t.task_id::text, t.status, t.request, t.result, t.error, t.attempts, t.created_at, t.updated_at`

	var out []domain.Task
	err := p.db.Tx(ctx, func(q repokit.Queryer) error {
		if _, err := q.Exec(ctx, exhaust, maxAttempts, ReasonLeaseExhausted); err != nil {
			return err
		}
		var err error
		out, err = store.Many(ctx, q, scanTask, lease, limit, workerID, maxAttempts, leaseFor.Seconds())
		return err
	})
	if err != nil {
		return nil, perr.FromDB(err, "tasks: lease")
	}
	return out, nil
}

// Complete stores the result and releases the lease
func (p *PG) Complete(ctx context.Context, id string, res pdom.ProcessResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "tasks: encode result")
	}
	return p.finish(ctx, id, domain.StatusCompleted, b, "")
}

// Fail records reason and releases the lease
func (p *PG) Fail(ctx context.Context, id string, reason string) error {
	return p.finish(ctx, id, domain.StatusFailed, nil, reason)
}

func (p *PG) finish(ctx context.Context, id string, st domain.Status, result []byte, reason string) error {
	tag, err := p.db.Exec(ctx, `
		UPDATE polish_tasks
		   SET status = $2, result = $3, error = $4, leased_by = NULL, lease_expires_at = NULL, updated_at = now()
		 WHERE task_id = $1 AND status = 'processing'`, id, string(st), result, reason)
	if err != nil {
		return perr.FromDB(err, "tasks: finish")
	}
	if tag.RowsAffected() == 0 {
		if _, err := p.Get(ctx, id); err != nil {
			return err
		}
		return perr.Conflictf("task %s is already finished", id)
	}
	return nil
}

func scanTask(row repokit.Row) (domain.Task, error) {
	var t domain.Task
	var st string
	var req, res []byte
	if err := row.Scan(&t.ID, &st, &req, &res, &t.Error, &t.Attempts, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.Status(st)
	if err := decode(req, res, &t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func decode(req, res []byte, t *domain.Task) error {
	if len(req) > 0 {
		if err := json.Unmarshal(req, &t.Request); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "tasks: decode request")
		}
	}
	if len(res) > 0 {
		var r pdom.ProcessResult
		if err := json.Unmarshal(res, &r); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "tasks: decode result")
		}
		t.Result = &r
	}
	return nil
}
