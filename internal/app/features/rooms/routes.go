// internal/app/features/rooms/routes.go
package rooms

import "github.com/go-chi/chi/v5"

// Register adds the room routes at the API root.
func Register(r chi.Router, h *Handler) {
	r.Get("/rooms", h.ServeRooms)
	r.Get("/freeRooms", h.ServeFree)
}
