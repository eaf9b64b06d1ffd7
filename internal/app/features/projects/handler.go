// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"net/http"

	projectstore "github.com/codeshare-cloud/codeshare/internal/app/store/projects"
	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/auth"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for projects and membership.
// Membership is keyed by email, so it resolves the caller's email
// through the user store rather than trusting a request parameter.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Projects *projectstore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Projects: projectstore.New(db),
		Users:    users,
	}
}

// callerWithEmail resolves the authenticated identity and its stored
// email address.
func (h *Handler) callerWithEmail(r *http.Request) (*auth.Identity, string, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return nil, "", apierr.New(apierr.KindUnauthorized, "No token, authorization denied.")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		// A token for a deleted account is no longer a valid identity.
		return nil, "", apierr.Wrap(apierr.KindUnauthorized, "Token is not valid.", err)
	}
	return u, rec.Email, nil
}
