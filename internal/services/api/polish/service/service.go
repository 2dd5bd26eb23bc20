// Package service runs the polish pipeline: validate, polish, score, then
// hand the result to history and analytics
package service

import (
	"context"
	"time"

	"textpolish/internal/core/langhint"
	"textpolish/internal/core/polish"
	"textpolish/internal/core/scorer"
	"textpolish/internal/core/textclean"
	"textpolish/internal/platform/logger"

	hdom "textpolish/internal/services/api/history/domain"
	"textpolish/internal/services/api/polish/domain"
	sdom "textpolish/internal/services/api/stats/domain"
)

// Service defines the polish service contract
type Service interface {
	domain.ServicePort
}

// Option sets an optional collaborator
type Option func(*Svc)

// WithHistory stores every result; failures are logged, never returned
func WithHistory(h hdom.AppenderPort) Option { return func(s *Svc) { s.history = h } }

// WithRecorder records an analytics event per result, best effort
func WithRecorder(r sdom.RecorderPort) Option { return func(s *Svc) { s.events = r } }

// WithScorer replaces the scorer built from the embedded marker pack
func WithScorer(sc *scorer.Scorer) Option { return func(s *Svc) { s.scorer = sc } }

// Svc implements Service
type Svc struct {
	cfg      Config
	polisher *polish.Polisher
	scorer   *scorer.Scorer
	history  hdom.AppenderPort
	events   sdom.RecorderPort
	now      func() time.Time
}

// New constructs the service around p
func New(cfg Config, p *polish.Polisher, opts ...Option) *Svc {
	if p == nil {
		panic("polish.Service requires a non nil Polisher")
	}
	s := &Svc{cfg: cfg.withDefaults(), polisher: p, now: time.Now}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	if s.scorer == nil {
		s.scorer = scorer.New(nil)
	}
	return s
}

// Process validates in, then polishes and scores it. Only validation fails.
func (s *Svc) Process(ctx context.Context, in domain.TextRequest) (domain.ProcessResult, error) {
	in, err := s.Validate(in)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	return s.run(ctx, in), nil
}

// run expects a validated request. The cleaned text is polished; the submitted
// text is what the result and history echo.
func (s *Svc) run(ctx context.Context, in domain.TextRequest) domain.ProcessResult {
	start := s.now()
	out := s.polisher.Polish(ctx, textclean.Clean(in.Content), polish.Style(in.Style))
	sc := s.scorer.Score(out.Text)

	res := domain.ProcessResult{
		OriginalText:     in.Content,
		ProcessedText:    out.Text,
		AIProbability:    sc.Probability,
		ProcessingTime:   s.now().Sub(start).Seconds(),
		StyleUsed:        in.Style,
		APIUsed:          out.Provider,
		FallbackReason:   out.Reason,
		ReasoningContent: out.Reasoning,
	}
	res.HistoryID = s.offer(context.WithoutCancel(ctx), in, res)
	return res
}

// offer hands the result to the collaborators and returns the history id, 0 if not stored
func (s *Svc) offer(ctx context.Context, in domain.TextRequest, res domain.ProcessResult) int64 {
	log := logger.C(ctx)
	if s.events != nil {
		err := s.events.Record(ctx, sdom.Event{
			Style:          res.StyleUsed,
			APIUsed:        res.APIUsed,
			Fallback:       res.Fallback(),
			AIProbability:  res.AIProbability,
			ProcessingTime: res.ProcessingTime,
			InputChars:     runeLen(res.OriginalText),
			OutputChars:    runeLen(res.ProcessedText),
			CreatedAt:      s.now().UTC(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("polish: analytics record failed")
		}
	}
	if s.history == nil {
		return 0
	}
	id, err := s.history.Append(ctx, hdom.Entry{
		UserID:         in.UserID,
		OriginalText:   res.OriginalText,
		ProcessedText:  res.ProcessedText,
		AIProbability:  res.AIProbability,
		ProcessingTime: res.ProcessingTime,
		Style:          res.StyleUsed,
		APIUsed:        res.APIUsed,
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", in.UserID).Msg("polish: history append failed")
		return 0
	}
	return id
}

// Detect scores the submitted text as is, without a remote call
func (s *Svc) Detect(_ context.Context, in domain.TextRequest) (domain.DetectResult, error) {
	in, err := s.Validate(in)
	if err != nil {
		return domain.DetectResult{}, err
	}
	start := s.now()
	text := textclean.Clean(in.Content)
	sc := s.scorer.Score(text)
	hint := langhint.Detect(text)

	matched := sc.Matched
	if matched == nil {
		matched = []string{}
	}
	return domain.DetectResult{
		Content:         in.Content,
		AIProbability:   sc.Probability,
		ConfidenceLevel: sc.Confidence,
		Analysis:        sc.Signals,
		MatchedPatterns: matched,
		SentenceCount:   sc.Sentences,
		Script:          hint.Script,
		Language:        hint.Lang,
		ProcessingTime:  s.now().Sub(start).Seconds(),
	}, nil
}

// Styles lists the supported styles
func (s *Svc) Styles() []polish.StyleInfo { return polish.Styles() }
