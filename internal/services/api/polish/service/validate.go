package service

import (
	"strings"
	"unicode/utf8"

	"textpolish/internal/core/polish"
	"textpolish/internal/core/textclean"
	perr "textpolish/internal/platform/errors"

	"textpolish/internal/services/api/polish/domain"
)

// Validate checks the cleaned content and resolves style and user. Content is
// returned as submitted so it can be echoed and stored verbatim; the pipeline
// cleans its own copy.
func (s *Svc) Validate(in domain.TextRequest) (domain.TextRequest, error) {
	clean := textclean.Clean(in.Content)
	if strings.TrimSpace(clean) == "" {
		return in, perr.WithField(perr.Validationf("content must not be empty"), "content")
	}
	if n := runeLen(clean); n > s.cfg.MaxTextLength {
		return in, perr.WithField(
			perr.Validationf("content must be at most %d characters, got %d", s.cfg.MaxTextLength, n), "content")
	}

	st, ok := polish.ParseStyle(in.Style)
	if !ok {
		return in, perr.WithField(
			perr.Validationf("style must be one of %s", strings.Join(polish.StyleIDs(), ", ")), "style")
	}
	in.Style = string(st)

	if in.UserID = strings.TrimSpace(in.UserID); in.UserID == "" {
		in.UserID = domain.AnonymousUser
	}
	return in, nil
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
