// Package service contains history workflows
package service

import (
	"context"

	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"

	"textpolish/internal/services/api/history/domain"
	"textpolish/internal/services/api/history/repo"
)

// Service defines the history service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the history service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a history service on db
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("history.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("history.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// EnsureSchema applies the table definition
func (s *Svc) EnsureSchema(ctx context.Context) error { return s.Repo.EnsureSchema(ctx) }

// Append stores one processed text
func (s *Svc) Append(ctx context.Context, e domain.Entry) (int64, error) {
	if e.UserID == "" {
		e.UserID = "anonymous"
	}
	return s.Repo.Insert(ctx, e)
}

// List pages the history newest first and returns the total row count
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Record, int, error) {
	in = in.Normalize()

	var items []domain.Record
	var total int
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		if total, err = r.Count(ctx, in.UserID); err != nil {
			return err
		}
		items, err = r.List(ctx, in.UserID, in.PageSize, in.Offset())
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []domain.Record{}
	}
	return items, total, nil
}

// Get returns one record
func (s *Svc) Get(ctx context.Context, id int64) (domain.Record, error) {
	if id <= 0 {
		return domain.Record{}, perr.WithField(perr.Validationf("id must be a positive integer"), "id")
	}
	return s.Repo.Get(ctx, id)
}
