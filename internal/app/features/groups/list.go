// internal/app/features/groups/list.go
package groups

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
)

// ServeGroups handles GET /groups.
func (h *Handler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list groups")
	defer cancel()

	groups, err := h.Facade.ListGroups(ctx)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, groups)
}

// ServeGroupLectures handles GET /groupLectures:
//
//	[{"group":"inf1","lectures":["Algorithms","Networks"]}, ...]
func (h *Handler) ServeGroupLectures(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list group lectures")
	defer cancel()

	rows, err := h.Facade.GroupLectures(ctx)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, rows)
}
