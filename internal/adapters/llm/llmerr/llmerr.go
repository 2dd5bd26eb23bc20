// Package llmerr maps provider SDK failures onto coded errors
package llmerr

import (
	"context"
	"errors"

	perr "textpolish/internal/platform/errors"
)

// Wrap classifies err from provider: deadlines become timeouts, the rest
// upstream failures. nil stays nil.
func Wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return perr.Wrapf(err, perr.ErrorCodeTimeout, "%s: timed out", provider)
	}
	return perr.Wrapf(err, perr.ErrorCodeUpstream, "%s: request failed", provider)
}

// Empty reports a response without usable text
func Empty(provider string) error {
	return perr.Upstreamf("%s: no content in response", provider)
}
