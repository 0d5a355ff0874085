// internal/app/features/deadlines/edit.go
package deadlines

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeUpdate handles PUT /deadlines/{deadlineID}. Only deadline,
// shortLectureName and group change; omitted optional fields are cleared.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update deadline")
	defer cancel()

	d, err := h.Facade.UpdateDeadline(ctx, chi.URLParam(r, "deadlineID"), p.update())
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	h.Metrics.DeadlineWrite("update")
	apiresp.Message(w, http.StatusOK, msgUpdated, map[string]any{"deadline": d})
}
