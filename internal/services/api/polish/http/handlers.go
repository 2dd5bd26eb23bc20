// Package http provides http transport for text polishing and scoring
package http

import (
	stdhttp "net/http"

	"textpolish/internal/core/polish"
	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/services/api/polish/domain"
)

// Register mounts the polish endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.TextRequest](r, "/process", h.process)
	httpkit.PostJSON[domain.TextRequest](r, "/detect", h.detect)
	httpkit.PostJSON[[]domain.TextRequest](r, "/batch", h.batch)
	httpkit.Get(r, "/styles", h.styles)
}

type handlers struct{ svc domain.ServicePort }

// StylesResponse lists the supported styles
type StylesResponse struct {
	Styles []polish.StyleInfo `json:"styles"`
}

// swagger:route POST /process Polish polishProcess
// @Summary Polish text into a style and score the result
// @Tags Polish
// @Accept json
// @Produce json
// @Param payload body domain.TextRequest true "Text"
// @Success 200 {object} domain.ProcessResult "ok"
// @Router /process [post]
func (h *handlers) process(r *stdhttp.Request, in domain.TextRequest) (any, error) {
	return h.svc.Process(r.Context(), in)
}

// swagger:route POST /detect Polish polishDetect
// @Summary Score text for AI likelihood without rewriting it
// @Tags Polish
// @Accept json
// @Produce json
// @Param payload body domain.TextRequest true "Text"
// @Success 200 {object} domain.DetectResult "ok"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.TextRequest) (any, error) {
	return h.svc.Detect(r.Context(), in)
}

// swagger:route POST /batch Polish polishBatch
// @Summary Polish several texts
// @Tags Polish
// @Accept json
// @Produce json
// @Param payload body []domain.TextRequest true "Texts"
// @Success 200 {object} domain.BatchResult "ok"
// @Router /batch [post]
func (h *handlers) batch(r *stdhttp.Request, in []domain.TextRequest) (any, error) {
	return h.svc.Batch(r.Context(), in)
}

// swagger:route GET /styles Polish polishStyles
// @Summary Supported styles
// @Tags Polish
// @Produce json
// @Success 200 {object} StylesResponse "ok"
// @Router /styles [get]
func (h *handlers) styles(_ *stdhttp.Request) (any, error) {
	return StylesResponse{Styles: h.svc.Styles()}, nil
}
