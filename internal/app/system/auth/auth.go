// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/codeshare-cloud/codeshare/internal/app/system/apierr"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidToken is returned when a token fails signature or claims
// validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. Subject carries the user's ObjectID hex;
// Name is the display name captured at login time.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// Identity is the authenticated caller, resolved from a verified token and
// trusted as the acting user for the request.
type Identity struct {
	ID   primitive.ObjectID
	Name string
}

// Manager issues and verifies bearer tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager signing with HS256.
// If ttl is zero or negative, 24 hours is used.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (m *Manager) Issue(userID primitive.ObjectID, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Name: name,
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning the caller identity.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: id, Name: claims.Name}, nil
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the caller identity placed in context by RequireAuth.
func CurrentUser(r *http.Request) (*Identity, bool) {
	u, ok := r.Context().Value(currentUserKey).(*Identity)
	return u, ok
}

// WithIdentity returns a request whose context carries the given identity.
// Handlers under test use this to simulate an authenticated caller.
func WithIdentity(r *http.Request, u *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// RequireAuth verifies the Authorization header and injects the caller
// identity into the request context. Both a bare token and the
// "Bearer <token>" form are accepted. Requests without a valid token get
// a 401 with the standard error body.
func RequireAuth(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
			if raw == "" {
				apierr.Write(w, apierr.New(apierr.KindUnauthorized, "No token, authorization denied."))
				return
			}

			user, err := m.Verify(raw)
			if err != nil {
				apierr.Write(w, apierr.New(apierr.KindUnauthorized, "Token is not valid."))
				return
			}

			next.ServeHTTP(w, WithIdentity(r, user))
		})
	}
}
