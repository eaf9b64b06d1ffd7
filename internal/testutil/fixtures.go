package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateVerifiedUser inserts a verified user with the given name and
// email. The password hash is a throwaway; use the store's Register for
// credential tests.
func (f *Fixtures) CreateVerifiedUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        normalize.Email(email),
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixt",
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateSnippet inserts a snippet owned by the given user.
func (f *Fixtures) CreateSnippet(ctx context.Context, ownerID primitive.ObjectID, title, code, language string) models.Snippet {
	f.t.Helper()

	now := time.Now().UTC()
	sn := models.Snippet{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Code:      code,
		Language:  language,
		UserID:    ownerID,
		Versions:  []models.Version{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("snippets").InsertOne(ctx, sn); err != nil {
		f.t.Fatalf("failed to create test snippet: %v", err)
	}
	return sn
}

// CreateProject inserts a project owned by the given user.
func (f *Fixtures) CreateProject(ctx context.Context, ownerID primitive.ObjectID, name string) models.Project {
	f.t.Helper()

	p := models.Project{
		ID:             primitive.NewObjectID(),
		Name:           name,
		OwnerID:        ownerID,
		Members:        []string{},
		PendingMembers: []string{},
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}
