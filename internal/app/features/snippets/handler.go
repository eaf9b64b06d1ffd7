// internal/app/features/snippets/handler.go
package snippets

import (
	snippetstore "github.com/codeshare-cloud/codeshare/internal/app/store/snippets"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for snippets, their version
// history and their comments.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Snippets *snippetstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Snippets: snippetstore.New(db),
	}
}
