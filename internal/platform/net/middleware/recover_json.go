package middleware

import (
	"net/http"
	"runtime/debug"

	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/logger"
	phttp "textpolish/internal/platform/net/http"
	pnet "textpolish/internal/platform/net"
)

// RecoverJSON turns a panic into a logged stack and a 500 error envelope.
// http.ErrAbortHandler is re-panicked so the server can abort the connection.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			phttp.RespondError(w, r, perr.PanicErrf("internal server error"))
		}()
		next.ServeHTTP(w, r)
	})
}
