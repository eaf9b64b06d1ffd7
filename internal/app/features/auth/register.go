// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/codeshare-cloud/codeshare/internal/app/features/shared/respond"
	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/codeshare-cloud/codeshare/internal/app/system/inputval"
	"github.com/codeshare-cloud/codeshare/internal/app/system/mailer"
	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/app/system/otp"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleRegister handles POST /auth/register.
//
// The account write and the email dispatch are separate steps. Once the
// account is stored it stays stored; a mail failure afterwards is
// reported as a dependency failure so the caller knows to request a new
// code rather than retry the whole registration.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)

	if !inputval.IsValidName(req.Name) {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "Name is required."))
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed, "A valid email address is required."))
		return
	}
	if !inputval.IsValidPassword(req.Password) {
		apierr.Write(w, apierr.New(apierr.KindValidationFailed,
			fmt.Sprintf("Password must be at least %d characters.", inputval.MinPasswordLength)))
		return
	}

	code := otp.Generate()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, err := h.Users.Register(ctx, req.Name, req.Email, req.Password, code)
	if err != nil {
		if errors.Is(err, userstore.ErrEmailTaken) {
			apierr.Write(w, apierr.New(apierr.KindConflict, "An account with this email already exists."))
			return
		}
		h.Log.Error("register: store write failed", zap.String("email", req.Email), zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindInternal, "Could not register the account.", err))
		return
	}

	email := mailer.BuildVerificationEmail(mailer.VerificationEmailData{
		SiteName:  h.SiteName,
		Code:      code,
		ExpiresIn: fmt.Sprintf("%d minutes", int(h.Users.OTPExpiry().Minutes())),
	})
	email.To = u.Email

	if err := h.Mail.Send(ctx, email); err != nil {
		// The account write above is durable; only the notification failed.
		h.Log.Error("register: verification email failed", zap.String("email", u.Email), zap.Error(err))
		apierr.Write(w, apierr.Wrap(apierr.KindDependencyFailure,
			"Account saved, but the verification email could not be sent. Register again to receive a new code.", err))
		return
	}

	h.Log.Info("register: verification code sent", zap.String("email", u.Email))
	respond.JSON(w, http.StatusCreated, messageResponse{
		Message: "Registration received. Check your email for the verification code.",
	})
}
