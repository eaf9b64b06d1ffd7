// internal/app/features/snippets/versions.go
package snippets

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	snippetstore "github.com/codeshare-cloud/codeshare/internal/app/store/snippets"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleSaveVersion handles POST /snippets/{id}/versions. The owner
// edits the snippet; the pre-edit state is appended to the history in
// the same store update that applies the new title and code.
func (h *Handler) HandleSaveVersion(w http.ResponseWriter, r *http.Request) {
	u, err := caller(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	id, err := snippetID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req editRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Code == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Title and code are required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sn, err := h.Snippets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: load failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not edit the snippet.", err))
		return
	}
	if sn.UserID != u.ID {
		apierr.Write(w, apierr.New(apierr.KindForbidden, "Only the owner can edit a snippet."))
		return
	}

	updated, err := h.Snippets.SaveVersion(ctx, id, req.Title, req.Code)
	if err != nil {
		// Deleted between the ownership check and the write.
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: version save failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not edit the snippet.", err))
		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// HandleListVersions handles GET /snippets/{id}/versions: the history
// newest first. Read-only and open to any signed-in user.
func (h *Handler) HandleListVersions(w http.ResponseWriter, r *http.Request) {
	id, err := snippetID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	history, err := h.Snippets.ListVersions(ctx, id)
	if err != nil {
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: history read failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not read the history.", err))
		return
	}

	respond.JSON(w, http.StatusOK, history)
}
