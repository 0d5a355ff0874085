// internal/app/features/calendar/handler.go
package calendar

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/wuwapi/internal/app/features/lectures"
	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/icalfeed"
	"github.com/dalemusser/wuwapi/internal/app/system/reqtime"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.uber.org/zap"
)

// Handler serves the per-group iCalendar subscription feed.
type Handler struct {
	Facade *schedule.Facade
	Now    func() time.Time
	Log    *zap.Logger
}

func NewHandler(facade *schedule.Facade, logger *zap.Logger) *Handler {
	return &Handler{
		Facade: facade,
		Now:    time.Now,
		Log:    logger,
	}
}

// ServeFeed handles GET /calendar.ics?groups=. The feed holds the groups'
// upcoming lectures and the active deadlines that belong to one of the
// groups or to no group at all.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	groups, err := lectures.GroupsFromRequest(w, r)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	now, err := reqtime.Resolve(r, h.Now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "build calendar feed")
	defer cancel()

	lects, err := h.Facade.UpcomingLecturesForGroups(ctx, groups, now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	active, err := h.Facade.ListActiveDeadlines(ctx, now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	wanted := make(map[string]bool, len(groups))
	var names []string
	for _, g := range groups {
		if g = strings.TrimSpace(g); g != "" && !wanted[g] {
			wanted[g] = true
			names = append(names, g)
		}
	}
	var dls []schedule.DeadlineView
	for _, d := range active {
		if g := d.GroupName(); g == "" || wanted[g] {
			dls = append(dls, d)
		}
	}

	cal := icalfeed.Build("WUW "+strings.Join(names, ", "), lects, dls, now)
	w.Header().Set("Content-Type", icalfeed.ContentType)
	if err := icalfeed.Write(w, cal); err != nil {
		h.Log.Warn("calendar feed write failed", zap.Error(err))
	}
}
