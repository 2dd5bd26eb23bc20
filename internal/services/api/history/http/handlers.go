// Package http provides http transport for the processing history
package http

import (
	stdhttp "net/http"
	"strconv"

	"textpolish/internal/modkit/httpkit"
	perr "textpolish/internal/platform/errors"

	"textpolish/internal/services/api/history/domain"
)

// Register mounts history endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ svc domain.ServicePort }

type page struct {
	items        []domain.Record
	total, n, sz int
}

// Response carries the page block alongside the items
func (p page) Response() httpkit.Response { return httpkit.List(p.items, p.total, p.n, p.sz) }

// swagger:route GET /history History historyList
// @Summary Processing history, newest first
// @Tags History
// @Produce json
// @Param user_id query string false "Only this user"
// @Param page query int false "Page, from 1"
// @Param page_size query int false "Rows per page, at most 100"
// @Success 200 {array} domain.Record "ok"
// @Router /history [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	in := domain.ListInput{
		UserID:   r.URL.Query().Get("user_id"),
		Page:     httpkit.QueryInt(r, "page", 1),
		PageSize: httpkit.QueryInt(r, "page_size", domain.DefaultPageSize),
	}.Normalize()
	items, total, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return page{items: items, total: total, n: in.Page, sz: in.PageSize}, nil
}

// swagger:route GET /history/{id} History historyGet
// @Summary One history record
// @Tags History
// @Produce json
// @Param id path int true "Record id"
// @Success 200 {object} domain.Record "ok"
// @Router /history/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := strconv.ParseInt(httpkit.Param(r, "id"), 10, 64)
	if err != nil {
		return nil, perr.WithField(perr.Validationf("id must be an integer"), "id")
	}
	return h.svc.Get(r.Context(), id)
}
