// internal/app/features/snippets/delete.go
package snippets

import (
	"context"
	"errors"
	"net/http"

	snippetstore "github.com/codeshare-cloud/codeshare/internal/app/store/snippets"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /snippets/{id}. Owner only; the embedded
// history and comments go with the document.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sn, err := h.Snippets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: load failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not delete the snippet.", err))
		return
	}
	if sn.UserID != u.ID {
		apierr.Write(w, apierr.New(apierr.KindForbidden, "Only the owner can delete a snippet."))
		return
	}

	if err := h.Snippets.Delete(ctx, id); err != nil && !errors.Is(err, snippetstore.ErrNotFound) {
		h.Log.Error("snippets: delete failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not delete the snippet.", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
