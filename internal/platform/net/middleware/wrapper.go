package middleware

import (
	"net/http"
	"time"

	pstrings "textpolish/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the standard net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-Id or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For / X-Real-IP for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips/deflates responses at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// RedirectSlashes redirects /foo/ to /foo
func RedirectSlashes() Middleware { return chimw.RedirectSlashes }

// StripSlashes routes /foo/ as /foo
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET/HEAD path with a plain "." before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Throttle caps in-flight requests
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// AllowContentType rejects bodies with other content types (415)
func AllowContentType(ct ...string) Middleware { return chimw.AllowContentType(ct...) }

// CORSOptions is the subset of go-chi/cors we expose
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors; origins default to "*"
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-Id"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
