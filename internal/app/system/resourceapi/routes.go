package resourceapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the resource's CRUD endpoints.
//
// When mounted at /api/<resource>:
//   - GET    /         list (public)
//   - GET    /{id}     fetch one (public)
//   - POST   /         create (admin, unless the descriptor opens it)
//   - PUT    /{id}     update (admin)
//   - DELETE /{id}     delete (admin)
//
// requireAdmin is the token middleware applied to protected endpoints.
func Routes[T any](h *Handler[T], requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	if h.desc.PrivateRead {
		r.With(requireAdmin).Get("/", h.List)
		r.With(requireAdmin).Get("/{id}", h.GetOne)
	} else {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetOne)
	}

	if h.desc.PublicCreate {
		r.Post("/", h.Create)
	} else {
		r.With(requireAdmin).Post("/", h.Create)
	}

	r.Group(func(pr chi.Router) {
		pr.Use(requireAdmin)
		pr.Put("/{id}", h.Update)
		pr.Delete("/{id}", h.Delete)
	})

	return r
}
