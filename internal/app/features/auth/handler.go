// internal/app/features/auth/handler.go
package auth

import (
	"context"

	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/auth"
	"github.com/codeshare-cloud/codeshare/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Sender dispatches outbound mail. Satisfied by *mailer.Mailer; tests
// substitute a fake to observe or fail sends.
type Sender interface {
	Send(ctx context.Context, e mailer.Email) error
}

// Handler is the feature-level handler for registration, email
// verification and login. It holds the store, token manager and mail
// sender provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Tokens   *auth.Manager
	Mail     Sender
	SiteName string
}

func NewHandler(db *mongo.Database, users *userstore.Store, tokens *auth.Manager, mail Sender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    users,
		Tokens:   tokens,
		Mail:     mail,
		SiteName: siteName,
	}
}
