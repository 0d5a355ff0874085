// internal/app/features/calendar/routes.go
package calendar

import "github.com/go-chi/chi/v5"

// Register adds the feed route to the API root.
func Register(r chi.Router, h *Handler) {
	r.Get("/calendar.ics", h.ServeFeed)
}
