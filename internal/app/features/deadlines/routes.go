// internal/app/features/deadlines/routes.go
package deadlines

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /deadlines.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{deadlineID}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(h.WriteLimit.Middleware(h.Log))
		r.Post("/", h.ServeCreate)
		r.Put("/{deadlineID}", h.ServeUpdate)
		r.Delete("/{deadlineID}", h.ServeDelete)
	})
	return r
}
