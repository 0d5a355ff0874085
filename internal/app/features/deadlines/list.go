// internal/app/features/deadlines/list.go
package deadlines

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/reqtime"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /deadlines[?at=]: deadlines no older than one day,
// earliest first, each with its group color.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	now, err := reqtime.Resolve(r, h.Now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list deadlines")
	defer cancel()

	list, err := h.Facade.ListActiveDeadlines(ctx, now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, list)
}

// ServeGet handles GET /deadlines/{deadlineID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get deadline")
	defer cancel()

	d, err := h.Facade.GetDeadline(ctx, chi.URLParam(r, "deadlineID"))
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, d)
}
