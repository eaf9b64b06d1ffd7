package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRegister_CreatesUnverifiedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Register(ctx, "Alice", "  Alice@X.COM ", "password1", "123456")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if u.Email != "alice@x.com" {
		t.Errorf("email = %q, want normalized %q", u.Email, "alice@x.com")
	}
	if u.IsVerified {
		t.Error("new registration should not be verified")
	}
	if u.OTPHash == "" {
		t.Error("expected an armed OTP hash")
	}
	if u.OTPHash == "123456" || u.PasswordHash == "password1" {
		t.Error("plaintext secrets must never be stored")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestRegister_RepeatBeforeVerifyOverwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Register(ctx, "Alice", "alice@x.com", "password1", "111111")
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	second, err := store.Register(ctx, "Alicia", "alice@x.com", "password2", "222222")
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}

	if second.ID != first.ID {
		t.Error("re-registering before verification should reuse the record")
	}
	if second.Name != "Alicia" {
		t.Errorf("name = %q, want overwrite to %q", second.Name, "Alicia")
	}

	// The reissued code works, the stale one doesn't.
	if _, err := store.VerifyOTP(ctx, "alice@x.com", "111111"); !errors.Is(err, userstore.ErrInvalidOTP) {
		t.Errorf("stale code: err = %v, want ErrInvalidOTP", err)
	}
	if _, err := store.VerifyOTP(ctx, "alice@x.com", "222222"); err != nil {
		t.Errorf("reissued code should verify, got %v", err)
	}
}

func TestRegister_VerifiedEmailRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	if _, err := store.Register(ctx, "Alice", "alice@x.com", "password1", "123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := store.VerifyOTP(ctx, "alice@x.com", "123456"); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}

	_, err := store.Register(ctx, "Mallory", "alice@x.com", "stolen", "999999")
	if !errors.Is(err, userstore.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}

	// The verified account is untouched.
	u, err := store.GetByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if !u.IsVerified || u.Name != "Alice" {
		t.Errorf("verified account was modified: %+v", u)
	}
}

func TestVerifyOTP_Scenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Register(ctx, "Alice", "alice@x.com", "password1", "123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong code: error, still unverified.
	if _, err := store.VerifyOTP(ctx, "alice@x.com", "654321"); !errors.Is(err, userstore.ErrInvalidOTP) {
		t.Fatalf("wrong code: err = %v, want ErrInvalidOTP", err)
	}
	u, err := store.GetByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.IsVerified {
		t.Fatal("wrong code must not verify the account")
	}

	// Correct code: verified, OTP cleared.
	verified, err := store.VerifyOTP(ctx, "alice@x.com", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !verified.IsVerified {
		t.Error("expected is_verified true")
	}
	if verified.OTPHash != "" || verified.OTPAttempts != 0 || !verified.OTPExpiresAt.IsZero() {
		t.Errorf("OTP fields not cleared: %+v", verified)
	}

	// Login works now.
	if _, err := store.Authenticate(ctx, "alice@x.com", "password1"); err != nil {
		t.Errorf("Authenticate after verification failed: %v", err)
	}
}

func TestVerifyOTP_NoPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.VerifyOTP(ctx, "ghost@x.com", "123456"); !errors.Is(err, userstore.ErrInvalidOTP) {
		t.Errorf("unknown email: err = %v, want ErrInvalidOTP", err)
	}

	// Verified user with no armed OTP.
	f := testutil.NewFixtures(t, db)
	f.CreateVerifiedUser(ctx, "Bob", "bob@x.com")
	if _, err := store.VerifyOTP(ctx, "bob@x.com", "123456"); !errors.Is(err, userstore.ErrInvalidOTP) {
		t.Errorf("verified account: err = %v, want ErrInvalidOTP", err)
	}
}

func TestVerifyOTP_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, time.Millisecond)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Register(ctx, "Alice", "alice@x.com", "password1", "123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := store.VerifyOTP(ctx, "alice@x.com", "123456"); !errors.Is(err, userstore.ErrOTPExpired) {
		t.Errorf("err = %v, want ErrOTPExpired", err)
	}
}

func TestVerifyOTP_AttemptLockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Register(ctx, "Alice", "alice@x.com", "password1", "123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for i := 0; i < userstore.MaxVerifyAttempts; i++ {
		if _, err := store.VerifyOTP(ctx, "alice@x.com", "000000"); !errors.Is(err, userstore.ErrInvalidOTP) {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidOTP", i, err)
		}
	}

	// Each refused attempt must have landed as a counted write.
	var doc struct {
		Attempts int `bson:"otp_attempts"`
	}
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "alice@x.com"}).Decode(&doc); err != nil {
		t.Fatalf("reading attempt counter: %v", err)
	}
	if doc.Attempts != userstore.MaxVerifyAttempts {
		t.Errorf("otp_attempts = %d, want %d", doc.Attempts, userstore.MaxVerifyAttempts)
	}

	// Even the correct code is refused after the lockout trips.
	if _, err := store.VerifyOTP(ctx, "alice@x.com", "123456"); !errors.Is(err, userstore.ErrTooManyAttempts) {
		t.Errorf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Register(ctx, "Alice", "alice@x.com", "password1", "123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unverified accounts cannot log in, with a distinct error.
	if _, err := store.Authenticate(ctx, "alice@x.com", "password1"); !errors.Is(err, userstore.ErrNotVerified) {
		t.Fatalf("unverified login: err = %v, want ErrNotVerified", err)
	}

	if _, err := store.VerifyOTP(ctx, "alice@x.com", "123456"); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}

	if _, err := store.Authenticate(ctx, "alice@x.com", "wrong-pass"); !errors.Is(err, userstore.ErrBadCredentials) {
		t.Errorf("wrong password: err = %v, want ErrBadCredentials", err)
	}
	if _, err := store.Authenticate(ctx, "nobody@x.com", "password1"); !errors.Is(err, userstore.ErrBadCredentials) {
		t.Errorf("unknown email: err = %v, want ErrBadCredentials", err)
	}

	u, err := store.Authenticate(ctx, "ALICE@X.COM", "password1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if u.Name != "Alice" {
		t.Errorf("Name = %q, want %q", u.Name, "Alice")
	}
}
