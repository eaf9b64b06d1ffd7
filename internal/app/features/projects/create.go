// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/auth"
	"github.com/codeshare-cloud/codeshare/internal/app/system/sanitize"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate handles POST /projects. The caller becomes the owner and
// is implicitly part of the project without appearing in members.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.New(apierr.KindUnauthorized, "No token, authorization denied."))
		return
	}

	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Project name is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Projects.Create(ctx, models.Project{
		Name:        req.Name,
		Description: sanitize.Text(req.Description),
		OwnerID:     u.ID,
	})
	if err != nil {
		h.Log.Error("projects: create failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not create the project.", err))
		return
	}

	respond.JSON(w, http.StatusCreated, p)
}
