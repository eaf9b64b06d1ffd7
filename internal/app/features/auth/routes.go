// internal/app/features/auth/routes.go
package auth

import "github.com/go-chi/chi/v5"

// Routes mounts the public auth routes.
// Typically: r.Mount("/auth", auth.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.Post("/verify", h.HandleVerify)
	r.Post("/login", h.HandleLogin)
	return r
}
