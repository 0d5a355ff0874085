// internal/app/features/deadlines/delete.go
package deadlines

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeDelete handles DELETE /deadlines/{deadlineID}. Unknown ids succeed.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete deadline")
	defer cancel()

	if err := h.Facade.DeleteDeadline(ctx, chi.URLParam(r, "deadlineID")); err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	h.Metrics.DeadlineWrite("delete")
	apiresp.Message(w, http.StatusOK, msgDeleted, nil)
}
