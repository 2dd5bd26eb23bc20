// Package http is the transport seam: a small Router interface over chi,
// the response envelope, and the server lifecycle
package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler shape mounted on a Router
type Handler = func(http.ResponseWriter, *http.Request)

// Router is everything modules are allowed to touch when mounting routes
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// Param returns a path parameter such as {id}
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }

// QueryInt reads a positive integer query parameter, def when absent or unusable
func QueryInt(r *http.Request, name string, def int) int {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
