// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account identified by email.
//
// NOTE:
//   - Email is stored lowercase/trimmed; the users collection carries a
//     unique index on it.
//   - PasswordHash and the OTP fields are bcrypt digests, never plaintext,
//     and are never serialized to clients.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	IsVerified   bool               `bson:"is_verified" json:"is_verified"`

	// Pending email verification. Empty/zero once the account is verified.
	OTPHash      string    `bson:"otp_hash,omitempty" json:"-"`
	OTPExpiresAt time.Time `bson:"otp_expires_at,omitempty" json:"-"`
	OTPAttempts  int       `bson:"otp_attempts,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
