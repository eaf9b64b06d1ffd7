// internal/app/features/snippets/list.go
package snippets

import (
	"context"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleList handles GET /snippets: every snippet, most recently updated
// first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Snippets.ListByRecency(ctx)
	if err != nil {
		h.Log.Error("snippets: list failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not list snippets.", err))
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
