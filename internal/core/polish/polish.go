// Package polish rewrites text into a writing style through a remote
// generator, falling back to a deterministic local transform on any failure
package polish

import (
	"context"
	"errors"
	"strings"
	"time"

	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/logger"
)

// SystemPrompt is the system instruction sent with every request
const SystemPrompt = "你是一个专业的中文文本润色助手。"

// ProviderFallback is the provenance of locally transformed text
const ProviderFallback = "fallback"

// Failure reasons reported in Outcome.Reason
const (
	ReasonDisabled = "disabled"
	ReasonTimeout  = "timeout"
	ReasonEmpty    = "empty"
	ReasonUpstream = "upstream"
	ReasonCanceled = "canceled"
	ReasonError    = "error"
)

// ErrEmptyCompletion is returned for a blank completion
var ErrEmptyCompletion = errors.New("polish: empty completion")

// Prompt is one generation request
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completion is a successful generation
type Completion struct {
	Text string
	// Reasoning carries reasoning_content from reasoning models, if any
	Reasoning string
}

// Generator is a remote text generation service
type Generator interface {
	// Name labels the provider in provenance ("deepseek", "anthropic")
	Name() string
	Generate(ctx context.Context, p Prompt) (Completion, error)
}

// Outcome is the result of Polish. Fallback outcomes carry the reason.
type Outcome struct {
	Text      string
	Reasoning string
	Provider  string
	Fallback  bool
	Reason    string
}

// Options configure a Polisher
type Options struct {
	// Timeout bounds the remote call, 0 means 30s
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	// Label overrides the generator name in provenance
	Label string
}

// Polisher is stateless after construction and safe for concurrent use
type Polisher struct {
	gen  Generator
	opts Options
}

// New returns a Polisher. A nil gen means permanent fallback mode.
func New(gen Generator, opts Options) *Polisher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2000
	}
	if opts.Label == "" && gen != nil {
		opts.Label = gen.Name()
	}
	return &Polisher{gen: gen, opts: opts}
}

// Remote reports whether a generator is configured
func (p *Polisher) Remote() bool { return p.gen != nil }

// Provider is the provenance label used for remote results
func (p *Polisher) Provider() string {
	if p.gen == nil {
		return ProviderFallback
	}
	return p.opts.Label
}

// BuildPrompt assembles the request for text in style
func (p *Polisher) BuildPrompt(text string, style Style) Prompt {
	return Prompt{
		System:      SystemPrompt,
		User:        spec(style).prompt + "\n\n" + text,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	}
}

// Polish makes one remote attempt and never fails: any error becomes the
// fallback transform
func (p *Polisher) Polish(ctx context.Context, text string, style Style) Outcome {
	style = Normalize(style)
	if p.gen == nil {
		return fallback(text, style, ReasonDisabled)
	}

	cctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	start := time.Now()
	c, err := p.gen.Generate(cctx, p.BuildPrompt(text, style))
	if err == nil && strings.TrimSpace(c.Text) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		reason := Reason(err)
		logger.C(ctx).Warn().Err(err).
			Str("provider", p.opts.Label).
			Str("style", string(style)).
			Str("reason", reason).
			Dur("elapsed", time.Since(start)).
			Msg("polish: remote call failed, using fallback")
		return fallback(text, style, reason)
	}
	return Outcome{Text: c.Text, Reasoning: c.Reasoning, Provider: p.opts.Label}
}

func fallback(text string, style Style, reason string) Outcome {
	return Outcome{Text: Fallback(text, style), Provider: ProviderFallback, Fallback: true, Reason: reason}
}

// Reason classifies a generator error
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCompletion):
		return ReasonEmpty
	case errors.Is(err, context.DeadlineExceeded), perr.IsCode(err, perr.ErrorCodeTimeout):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case perr.IsCode(err, perr.ErrorCodeUpstream):
		return ReasonUpstream
	}
	return ReasonError
}
