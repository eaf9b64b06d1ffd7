// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleLogin handles POST /auth/login. Only verified accounts can sign
// in; an unverified account gets a distinct message so the client can
// prompt for the code instead of a password retry.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.Password == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Email and password are required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrNotVerified):
			apierr.Write(w, apierr.New(apierr.KindForbidden, "Please verify your email before logging in."))
		case errors.Is(err, userstore.ErrBadCredentials), errors.Is(err, userstore.ErrNotFound):
			apierr.Write(w, apierr.New(apierr.KindUnauthorized, "Invalid email or password."))
		default:
			h.Log.Error("login: store failed", zap.String("email", req.Email), zap.Error(err))
			apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not log in.", err))
		}
		return
	}

	token, err := h.Tokens.Issue(u.ID, u.Name)
	if err != nil {
		h.Log.Error("login: token signing failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not log in.", err))
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: viewOf(u)})
}
