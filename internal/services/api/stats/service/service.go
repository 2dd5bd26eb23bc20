// Package service contains stats workflows
package service

import (
	"context"
	"time"

	"textpolish/internal/modkit/repokit"

	"textpolish/internal/services/api/stats/domain"
	"textpolish/internal/services/api/stats/repo"
)

const (
	defaultDays = 7
	maxDays     = 365
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo repo.Repo
	now  func() time.Time
}

// New constructs a stats service. db may be nil when ClickHouse alone backs it.
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), now: time.Now}
}

// EnsureSchema prepares the analytics sink
func (s *Svc) EnsureSchema(ctx context.Context) error { return s.Repo.EnsureSchema(ctx) }

// Record stores one event
func (s *Svc) Record(ctx context.Context, e domain.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	return s.Repo.InsertEvent(ctx, e)
}

// Summary aggregates the last in.Days days per style and overall
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) (domain.Summary, error) {
	days := in.Days
	switch {
	case days <= 0:
		days = defaultDays
	case days > maxDays:
		days = maxDays
	}
	rows, source, err := s.Repo.ByStyle(ctx, s.now().Add(-time.Duration(days)*24*time.Hour))
	if err != nil {
		return domain.Summary{}, err
	}

	out := domain.Summary{Days: days, Source: source, ByStyle: make([]domain.StyleRow, 0, len(rows))}
	var fallbacks int64
	var sumAI, sumTime float64
	for _, r := range rows {
		out.ByStyle = append(out.ByStyle, domain.StyleRow{
			Style:              r.Style,
			Total:              r.Total,
			Fallbacks:          r.Fallbacks,
			FallbackRatio:      ratio(float64(r.Fallbacks), r.Total),
			MeanAIProbability:  ratio(r.SumAIProbability, r.Total),
			MeanProcessingTime: ratio(r.SumProcessingTime, r.Total),
		})
		out.Total += r.Total
		fallbacks += r.Fallbacks
		sumAI += r.SumAIProbability
		sumTime += r.SumProcessingTime
	}
	out.FallbackRatio = ratio(float64(fallbacks), out.Total)
	out.MeanAIProbability = ratio(sumAI, out.Total)
	out.MeanProcessingTime = ratio(sumTime, out.Total)
	return out, nil
}

func ratio(sum float64, n int64) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
