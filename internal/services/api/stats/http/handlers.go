// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"

	"textpolish/internal/modkit/httpkit"
	"textpolish/internal/services/api/stats/domain"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// totals, fallback ratio and means per style
	httpkit.Get(r, "/summary", h.summary)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /stats/summary Stats statsSummary
// @Summary Processing summary per style
// @Tags Stats
// @Produce json
// @Param days query int false "Window in days, default 7"
// @Success 200 {object} domain.Summary "ok"
// @Router /stats/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summary(r.Context(), domain.SummaryInput{Days: httpkit.QueryInt(r, "days", 0)})
}
