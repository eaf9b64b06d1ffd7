// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	projectstore "github.com/codeshare-cloud/codeshare/internal/app/store/projects"
	snippetstore "github.com/codeshare-cloud/codeshare/internal/app/store/snippets"
	userstore "github.com/codeshare-cloud/codeshare/internal/app/store/users"
	"github.com/codeshare-cloud/codeshare/internal/app/system/mailer"
	"github.com/codeshare-cloud/codeshare/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and the SMTP mailer.
//
// Both are long-lived: the client's pool and the mailer are shared by
// every request and torn down in Shutdown. A failed SMTP check is
// logged but does not abort startup; registration reports send
// failures per request instead.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	m := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	})
	if err := m.Verify(ctx); err != nil {
		logger.Warn("SMTP server unreachable at startup; verification emails will fail until it recovers",
			zap.String("host", appCfg.MailSMTPHost), zap.Error(err))
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Mailer:        m,
	}, nil
}

// EnsureSchema creates the indexes every store relies on: the unique
// email index that backs the one-account-per-email rule, and the lookup
// indexes for recency listing and membership queries.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := userstore.New(db, appCfg.OTPExpiry).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := snippetstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("snippet indexes: %w", err)
	}
	if err := projectstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("project indexes: %w", err)
	}

	logger.Info("ensured MongoDB indexes")
	return nil
}
