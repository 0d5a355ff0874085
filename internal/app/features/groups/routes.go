// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Register adds the group routes at the API root.
func Register(r chi.Router, h *Handler) {
	r.Get("/groups", h.ServeGroups)
	r.Get("/groupLectures", h.ServeGroupLectures)
}
