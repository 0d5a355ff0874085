// internal/app/features/home/routes.go
package home

import "github.com/go-chi/chi/v5"

// Register adds the welcome route to the API root.
func Register(r chi.Router) {
	r.Get("/", ServeRoot)
}
