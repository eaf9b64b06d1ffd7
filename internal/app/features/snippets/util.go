// internal/app/features/snippets/util.go
package snippets

import (
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// snippetID parses the {id} route parameter. A malformed id cannot match
// any snippet, so it reports not found rather than a validation error.
func snippetID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apierr.New(apierr.KindNotFound, "Snippet not found.")
	}
	return id, nil
}

// caller returns the authenticated identity injected by RequireAuth.
func caller(r *http.Request) (*auth.Identity, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return nil, apierr.New(apierr.KindUnauthorized, "No token, authorization denied.")
	}
	return u, nil
}
