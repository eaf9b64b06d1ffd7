// internal/app/features/auth/types.go
package auth

import "github.com/codeshare-cloud/codeshare/internal/domain/models"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the client-facing shape of a user account.
type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}
