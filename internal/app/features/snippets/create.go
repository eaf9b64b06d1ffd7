// internal/app/features/snippets/create.go
package snippets

import (
	"context"
	"net/http"
	"strings"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /snippets. The caller becomes the owner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, err := caller(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Title is required."))
		return
	}
	if req.Code == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Code is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sn, err := h.Snippets.Create(ctx, models.Snippet{
		Title:    req.Title,
		Code:     req.Code,
		Language: strings.TrimSpace(req.Language),
		UserID:   u.ID,
	})
	if err != nil {
		h.Log.Error("snippets: create failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not create the snippet.", err))
		return
	}

	respond.JSON(w, http.StatusCreated, sn)
}
