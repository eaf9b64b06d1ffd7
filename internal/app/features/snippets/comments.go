// internal/app/features/snippets/comments.go
package snippets

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	snippetstore "github.com/codeshare-cloud/codeshare/internal/app/store/snippets"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/sanitize"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleAddComment handles POST /snippets/{id}/comments. The author's
// display name is captured from the token at comment time and never
// re-resolved.
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	text := sanitize.Text(req.Text)
	if text == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Comment text is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sn, err := h.Snippets.AddComment(ctx, id, models.Comment{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		UserName:  u.Name,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: comment add failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not add the comment.", err))
		return
	}

	respond.JSON(w, http.StatusCreated, sn)
}

// HandleDeleteComment handles DELETE /snippets/{id}/comments/{commentID}.
// The comment author or the snippet owner may delete; a comment id that
// no longer exists is a success, so retried deletes stay cheap.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
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
	commentID := chi.URLParam(r, "commentID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sn, err := h.Snippets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: load failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not delete the comment.", err))
		return
	}

	for _, c := range sn.Comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != u.ID && sn.UserID != u.ID {
			apierr.Write(w, apierr.New(apierr.KindForbidden, "Only the comment author or the snippet owner can delete a comment."))
			return
		}
		break
	}

	if err := h.Snippets.DeleteComment(ctx, id, commentID); err != nil {
		if errors.Is(err, snippetstore.ErrNotFound) {
			apierr.Write(w, apierr.New(apierr.KindNotFound, "Snippet not found."))
			return
		}
		h.Log.Error("snippets: comment delete failed", zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not delete the comment.", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
