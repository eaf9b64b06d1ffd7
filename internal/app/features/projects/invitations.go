// internal/app/features/projects/invitations.go
package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	projectstore "github.com/codeshare-cloud/codeshare/internal/app/store/projects"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/auth"
	"github.com/codeshare-cloud/codeshare/internal/app/system/inputval"
	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type inviteRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// projectID parses the {id} route parameter.
func projectID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apierr.New(apierr.KindNotFound, "Project not found.")
	}
	return id, nil
}

// HandleInvite handles POST /projects/{id}/invitations. Owner only. The
// invitee does not need an account yet; membership is keyed by email.
// Inviting an address that is already a member or already pending
// succeeds without changing anything.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.New(apierr.KindUnauthorized, "No token, authorization denied."))
		return
	}
	id, err := projectID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req inviteRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	req.Email = normalize.Email(req.Email)
	if !inputval.IsValidEmail(req.Email) {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "A valid email address is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Project not found."))
			return
		}
		h.Log.Error("projects: load failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not send the invitation.", err))
		return
	}
	if p.OwnerID != u.ID {
		apierr.Write(w, apierr.New(apierr.KindForbidden, "Only the owner can invite members."))
		return
	}

	if err := h.Projects.Invite(ctx, id, req.Email); err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Project not found."))
			return
		}
		h.Log.Error("projects: invite failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not send the invitation.", err))
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "Invitation sent."})
}

// HandleAccept handles POST /projects/{id}/invitations/accept. The
// accepted email is always the caller's own, resolved from their
// account; there is no way to accept on someone else's behalf.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	_, email, err := h.callerWithEmail(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	id, err := projectID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Projects.Accept(ctx, id, email); err != nil {
		switch {
		case errors.Is(err, projectstore.ErrNotFound):
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Project not found."))
		case errors.Is(err, projectstore.ErrNoInvitation):
			apierr.Write(w, apierr.New(apierr.KindNotFound, "No pending invitation for this project."))
		default:
			h.Log.Error("projects: accept failed", zap.Error(err))
			apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not accept the invitation.", err))
		}
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "Invitation accepted."})
}
