// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/codeshare-cloud/codeshare/internal/app/features/auth"
	healthfeature "github.com/codeshare-cloud/codeshare/internal/app/features/health"
	projectsfeature "github.com/codeshare-cloud/codeshare/internal/app/features/projects"
	snippetsfeature "github.com/codeshare-cloud/codeshare/internal/app/features/snippets"
	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router splits into a public group
// (health, registration, verification, login) and a bearer-token group
// (snippets and projects).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	users := userstore.New(db, appCfg.OTPExpiry)
	tokens := auth.NewManager(appCfg.JWTSecret, appCfg.JWTTTL)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public auth surface
	authHandler := authfeature.NewHandler(db, users, tokens, deps.Mailer, appCfg.SiteName, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Everything else requires a valid bearer token.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAuth(tokens))

		snippetsHandler := snippetsfeature.NewHandler(db, logger)
		pr.Mount("/snippets", snippetsfeature.Routes(snippetsHandler))

		projectsHandler := projectsfeature.NewHandler(db, users, logger)
		pr.Mount("/projects", projectsfeature.Routes(projectsHandler))
	})

	return r, nil
}
