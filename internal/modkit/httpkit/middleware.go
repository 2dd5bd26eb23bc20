package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"textpolish/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	// Timeout bounds a whole request, 0 means 2m. It must exceed the LLM timeout.
	Timeout time.Duration
	// SlowRequest marks access log lines as slow, 0 means 5s
	SlowRequest time.Duration
}

// CommonStack is the baseline middleware for the versioned API
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 2 * time.Minute
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 5 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: []string{"/api/v1/health"}}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/api/v1/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
