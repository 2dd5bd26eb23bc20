// Package http provides http transport for async polish tasks
package http

import (
	stdhttp "net/http"

	"textpolish/internal/modkit/httpkit"
	pdom "textpolish/internal/services/api/polish/domain"
	"textpolish/internal/services/tasks/domain"
)

// Register mounts the async endpoints on the given router
func Register(r httpkit.Router, s domain.SubmitPort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[pdom.TextRequest](r, "/process/async", h.submit)
	httpkit.Get(r, "/task/{id}", h.status)
}

type handlers struct{ svc domain.SubmitPort }

// swagger:route POST /process/async Tasks tasksSubmit
// @Summary Queue text for background polishing
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body pdom.TextRequest true "Text"
// @Success 200 {object} domain.Accepted "queued"
// @Router /process/async [post]
func (h *handlers) submit(r *stdhttp.Request, in pdom.TextRequest) (any, error) {
	return h.svc.Submit(r.Context(), in)
}

// swagger:route GET /task/{id} Tasks tasksStatus
// @Summary Task status and, once finished, its result or error
// @Tags Tasks
// @Produce json
// @Param id path string true "Task id"
// @Success 200 {object} domain.Task "ok"
// @Failure 404 {object} httpkit.Envelope "unknown task"
// @Router /task/{id} [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context(), httpkit.Param(r, "id"))
}
