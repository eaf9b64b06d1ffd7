// internal/app/features/projects/routes.go
package projects

import "github.com/go-chi/chi/v5"

// Routes mounts the project routes. The caller wraps the mount in the
// auth middleware; every route here assumes a signed-in identity.
// Typically: r.Mount("/projects", projects.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/invitations", h.HandleListInvitations)

	r.Post("/{id}/invitations", h.HandleInvite)
	r.Post("/{id}/invitations/accept", h.HandleAccept)

	return r
}
