// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/codeshare-cloud/codeshare/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. The mailer
// lives here because it is a long-lived connection-like resource: built
// once in ConnectDB, reused by every registration, closed in Shutdown.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Mailer        *mailer.Mailer
}
