// internal/app/features/lectures/routes.go
package lectures

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /lectures.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{lectureID}", h.ServeGet)
	return r
}

// Register adds the lecture routes that live at the API root.
func Register(r chi.Router, h *Handler) {
	r.Mount("/lectures", Routes(h))
	r.Get("/upcomingLectures", h.ServeUpcoming)
	r.Get("/lecturesForGroups", h.ServeForGroups)
	r.Post("/lecturesForGroups", h.ServeForGroups)
}
