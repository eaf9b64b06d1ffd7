// Package respond holds the JSON request/response helpers every feature
// handler uses.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
)

// maxBodyBytes caps request bodies; none of the API payloads are large.
const maxBodyBytes = 1 << 20

// Decode reads the request body as JSON into v. A malformed or oversized
// body yields a validation error ready for apierr.Write.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.Wrap(apierr.KindValidationFailed, "Request body is not valid JSON.", err)
	}
	return nil
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
