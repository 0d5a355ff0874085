// internal/app/features/lectures/list.go
package lectures

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/reqtime"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /lectures.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list lectures")
	defer cancel()

	list, err := h.Facade.ListLectures(ctx)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, list)
}

// ServeGet handles GET /lectures/{lectureID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get lecture")
	defer cancel()

	l, err := h.Facade.GetLecture(ctx, chi.URLParam(r, "lectureID"))
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, l)
}

// ServeUpcoming handles GET /upcomingLectures[?at=].
func (h *Handler) ServeUpcoming(w http.ResponseWriter, r *http.Request) {
	now, err := reqtime.Resolve(r, h.Now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list upcoming lectures")
	defer cancel()

	list, err := h.Facade.ListUpcomingLectures(ctx, now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, list)
}
