// internal/app/features/auth/verify.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleVerify handles POST /auth/verify. A correct code marks the
// account verified and clears the stored code; anything else leaves the
// account untouched.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.OTP == "" {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Email and verification code are required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrNotFound), errors.Is(err, userstore.ErrInvalidOTP):
			apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Invalid OTP."))
		case errors.Is(err, userstore.ErrOTPExpired):
			apierr.Write(w, apierr.New(apierr.KindValidationFailed, "The code has expired. Register again to receive a new one."))
		case errors.Is(err, userstore.ErrTooManyAttempts):
			apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Too many attempts. Register again to receive a new code."))
		default:
			h.Log.Error("verify: store failed", zap.String("email", req.Email), zap.Error(err))
			apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not verify the account.", err))
		}
		return
	}

	h.Log.Info("verify: email verified", zap.String("email", u.Email))
	respond.JSON(w, http.StatusOK, messageResponse{Message: "Email verified. You can now log in."})
}
