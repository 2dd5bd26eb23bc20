package http

import (
	"net/http"

	"textpolish/internal/platform/net/http/bind"
)

// Result lets a handler pick its own status or attach a page while keeping
// the (value, error) signature
type Result interface{ Response() Response }

func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if res, ok := out.(Result); ok {
		return res.Response()
	}
	return OK(out)
}

// JSONHandler binds and validates a T from the body, then calls fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return wrap(fn(r)) })
}
