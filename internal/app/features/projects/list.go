// internal/app/features/projects/list.go
package projects

import (
	"context"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleList handles GET /projects: projects the caller owns plus
// projects whose members set holds the caller's email.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	u, email, err := h.callerWithEmail(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Projects.ListFor(ctx, u.ID, email)
	if err != nil {
		h.Log.Error("projects: list failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not list projects.", err))
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// HandleListInvitations handles GET /projects/invitations: projects where
// the caller's email is currently pending. Always read fresh from the
// store so the list reflects accepts made moments ago.
func (h *Handler) HandleListInvitations(w http.ResponseWriter, r *http.Request) {
	_, email, err := h.callerWithEmail(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Projects.ListInvitationsFor(ctx, email)
	if err != nil {
		h.Log.Error("projects: invitation list failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not list invitations.", err))
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
