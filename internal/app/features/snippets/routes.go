// internal/app/features/snippets/routes.go
package snippets

import "github.com/go-chi/chi/v5"

// Routes mounts the snippet routes. The caller wraps the mount in the
// auth middleware; every route here assumes a signed-in identity.
// Typically: r.Mount("/snippets", snippets.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/versions", h.HandleSaveVersion)
	r.Get("/{id}/versions", h.HandleListVersions)

	r.Post("/{id}/comments", h.HandleAddComment)
	r.Delete("/{id}/comments/{commentID}", h.HandleDeleteComment)

	return r
}
