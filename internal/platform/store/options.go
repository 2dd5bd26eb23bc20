package store

import "textpolish/internal/platform/logger"

// Option adjusts the Store before backends open
type Option func(*Store) error

// WithLogger replaces the store logger used by tracers and openers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
