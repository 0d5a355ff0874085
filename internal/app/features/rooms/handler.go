// internal/app/features/rooms/handler.go
package rooms

import (
	"net/http"
	"time"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/reqtime"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.uber.org/zap"
)

// Handler serves room listings and availability.
type Handler struct {
	Facade *schedule.Facade
	Now    func() time.Time
	Log    *zap.Logger
}

func NewHandler(facade *schedule.Facade, logger *zap.Logger) *Handler {
	return &Handler{Facade: facade, Now: time.Now, Log: logger}
}

// ServeRooms handles GET /rooms.
func (h *Handler) ServeRooms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list rooms")
	defer cancel()

	rooms, err := h.Facade.ListRooms(ctx)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, rooms)
}

// ServeFree handles GET /freeRooms[?at=]: rooms not used by any lecture
// running at that instant.
func (h *Handler) ServeFree(w http.ResponseWriter, r *http.Request) {
	now, err := reqtime.Resolve(r, h.Now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list free rooms")
	defer cancel()

	rooms, err := h.Facade.ListFreeRooms(ctx, now)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, rooms)
}
