// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/codeshare-cloud/codeshare/internal/app/system/normalize"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no project matches the id.
	ErrNotFound = errors.New("project not found")
	// ErrNoInvitation is returned when accepting without a pending invite.
	ErrNoInvitation = errors.New("no pending invitation for this project")
)

// Store holds projects and implements the membership transitions. Both
// membership sets hold normalized emails so people can be invited before
// they register; every transition is a single guarded document update, so
// members and pending_members stay disjoint at every observable point.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// EnsureIndexes creates the membership lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_projects_owner"),
		},
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index().SetName("idx_projects_members"),
		},
		{
			Keys:    bson.D{{Key: "pending_members", Value: 1}},
			Options: options.Index().SetName("idx_projects_pending"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a new project with empty membership sets.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Members = []string{}
	p.PendingMembers = []string{}
	p.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListFor returns projects where the caller is the owner or their email is
// an accepted member. Ownership is implicit: a project shows up for its
// owner without the owner's email appearing in members.
func (s *Store) ListFor(ctx context.Context, ownerID primitive.ObjectID, email string) ([]models.Project, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"owner_id": ownerID},
		bson.M{"members": normalize.Email(email)},
	}}
	return s.list(ctx, filter)
}

// ListInvitationsFor returns projects where the email is currently
// pending. Read straight from the store each call; membership state is
// never cached.
func (s *Store) ListInvitationsFor(ctx context.Context, email string) ([]models.Project, error) {
	return s.list(ctx, bson.M{"pending_members": normalize.Email(email)})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Invite moves (project, email) from NONE to PENDING. The filter guards
// against the email already being a member or already pending, so
// re-inviting is a silent no-op and a current member is never demoted.
// Returns ErrNotFound only when the project itself does not exist.
func (s *Store) Invite(ctx context.Context, id primitive.ObjectID, email string) error {
	email = normalize.Email(email)

	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":             id,
			"members":         bson.M{"$ne": email},
			"pending_members": bson.M{"$ne": email},
		},
		bson.M{"$addToSet": bson.M{"pending_members": email}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the project is gone or the guard tripped. Only the
		// former is an error.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Accept moves (project, email) from PENDING to MEMBER. The pull and the
// add happen in one update filtered on the email being pending, so a
// double-accept race cannot duplicate the email in members and the two
// sets are never both populated with it. Accepting without a pending
// invitation returns ErrNoInvitation and never touches members.
func (s *Store) Accept(ctx context.Context, id primitive.ObjectID, email string) error {
	email = normalize.Email(email)

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "pending_members": email},
		bson.M{
			"$pull":     bson.M{"pending_members": email},
			"$addToSet": bson.M{"members": email},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNoInvitation
	}
	return nil
}
