// internal/app/features/deadlines/new.go
package deadlines

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
)

// ServeCreate handles POST /deadlines.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create deadline")
	defer cancel()

	d, err := h.Facade.CreateDeadline(ctx, p.input())
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	h.Metrics.DeadlineWrite("create")
	apiresp.Message(w, http.StatusOK, msgCreated, map[string]any{
		"id":       d.ID.Hex(),
		"deadline": d,
	})
}
