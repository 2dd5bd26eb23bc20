// Package httpkit re-exports the platform HTTP helpers modules use, so
// module code does not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "textpolish/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is the platform handler shape
	Handler = phttp.Handler
	// Response is a status plus envelope body
	Response = phttp.Response
	// Page is pagination metadata
	Page = phttp.Page
	// Envelope is the wire envelope
	Envelope = phttp.Envelope
)

// OK is a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Accepted is a 202 response
func Accepted(data any) Response { return phttp.Accepted(data) }

// Error maps err to its status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// List is a 200 response carrying a page
func List(items any, total, page, size int) Response { return phttp.List(items, total, page, size) }

// Param returns a path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// QueryInt reads a positive integer query parameter
func QueryInt(r *http.Request, name string, def int) int { return phttp.QueryInt(r, name, def) }
