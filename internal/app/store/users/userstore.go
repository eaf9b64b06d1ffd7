// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost for password and OTP hashing.
	BcryptCost = 10
	// DefaultOTPExpiry is how long a verification code is valid.
	DefaultOTPExpiry = 10 * time.Minute
	// MaxVerifyAttempts is the number of wrong codes tolerated before the
	// pending verification locks.
	MaxVerifyAttempts = 5
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that belongs to
	// an already-verified account.
	ErrEmailTaken = errors.New("an account with this email is already verified")
	// ErrInvalidOTP is returned when the code doesn't match or no
	// verification is pending.
	ErrInvalidOTP = errors.New("invalid OTP or email")
	// ErrOTPExpired is returned when the code's validity window has passed.
	ErrOTPExpired = errors.New("verification code expired")
	// ErrTooManyAttempts is returned after too many wrong codes.
	ErrTooManyAttempts = errors.New("too many verification attempts")
	// ErrNotVerified is returned on login before email verification.
	ErrNotVerified = errors.New("email not verified")
	// ErrBadCredentials is returned when email or password don't match.
	ErrBadCredentials = errors.New("invalid credentials")
)

// Store is the identity store backing registration, verification and login.
type Store struct {
	c         *mongo.Collection
	otpExpiry time.Duration
}

// New creates a Store. If otpExpiry is zero or negative, DefaultOTPExpiry
// is used.
func New(db *mongo.Database, otpExpiry time.Duration) *Store {
	if otpExpiry <= 0 {
		otpExpiry = DefaultOTPExpiry
	}
	return &Store{c: db.Collection("users"), otpExpiry: otpExpiry}
}

// OTPExpiry returns the configured validity window for verification codes.
func (s *Store) OTPExpiry() time.Duration { return s.otpExpiry }

// EnsureIndexes creates the unique email index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_users_email_unique").SetUnique(true),
	})
	return err
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Register creates or refreshes an unverified account and arms a new OTP.
//
// The write is an upsert keyed on (email, is_verified=false): registering
// again before verifying overwrites name/password and reissues a code, so
// typo-fixes and resends work. A verified account is never overwritten;
// the guarded upsert then collides with the unique email index and the
// call returns ErrEmailTaken.
//
// The OTP is stored only as a bcrypt hash; the plaintext code is returned
// once, for the caller to hand to the mailer.
func (s *Store) Register(ctx context.Context, name, email, password, code string) (*models.User, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	email = normalize.Email(email)

	filter := bson.M{"email": email, "is_verified": false}
	update := bson.M{
		"$set": bson.M{
			"name":           normalize.Name(name),
			"password_hash":  string(passHash),
			"is_verified":    false,
			"otp_hash":       string(codeHash),
			"otp_expires_at": now.Add(s.otpExpiry),
			"otp_attempts":   0,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{
			"email":      email,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// VerifyOTP checks the code for the given email. On success the account
// is marked verified and the OTP fields are cleared in the same update.
//
// Every attempt, right or wrong, increments the attempt counter first, so
// a guesser cannot keep trying indefinitely within one code's window.
func (s *Store) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if u.IsVerified || u.OTPHash == "" {
		return nil, ErrInvalidOTP
	}
	if time.Now().After(u.OTPExpiresAt) {
		return nil, ErrOTPExpired
	}
	if u.OTPAttempts >= MaxVerifyAttempts {
		return nil, ErrTooManyAttempts
	}

	// The increment must land before the compare; a code check that
	// cannot be counted against the limit is not allowed to proceed.
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$inc": bson.M{"otp_attempts": 1}}); err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.OTPHash), []byte(code)) != nil {
		return nil, ErrInvalidOTP
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set":   bson.M{"is_verified": true, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"otp_hash": "", "otp_expires_at": "", "otp_attempts": ""},
	}
	var verified models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": u.ID}, update, opts).Decode(&verified); err != nil {
		return nil, err
	}
	return &verified, nil
}

// Authenticate checks email+password for a verified account.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}
