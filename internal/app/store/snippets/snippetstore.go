// internal/app/store/snippets/snippetstore.go
package snippetstore

import (
	"context"
	"errors"
	"time"

	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no snippet matches the id.
	ErrNotFound = errors.New("snippet not found")
)

// Store holds snippets with their embedded version history and comments,
// and implements the versioning rules: every edit snapshots the pre-edit
// state into the history before the live fields change, in one atomic
// document update.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("snippets")}
}

// EnsureIndexes creates the recency-listing index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("idx_snippets_recency"),
	})
	return err
}

// Create inserts a new snippet with empty history and comments.
func (s *Store) Create(ctx context.Context, sn models.Snippet) (models.Snippet, error) {
	now := time.Now().UTC()
	sn.ID = primitive.NewObjectID()
	sn.Versions = []models.Version{}
	sn.Comments = []models.Comment{}
	sn.CreatedAt = now
	sn.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sn); err != nil {
		return models.Snippet{}, err
	}
	return sn, nil
}

// GetByID loads a snippet by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Snippet, error) {
	var sn models.Snippet
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sn, nil
}

// ListByRecency returns all snippets ordered most-recently-updated first.
// Equal timestamps tie-break on _id descending, which is stable across
// repeated reads.
func (s *Store) ListByRecency(ctx context.Context) ([]models.Snippet, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	snippets := []models.Snippet{}
	if err := cur.All(ctx, &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}

// SaveVersion applies an edit: the current {title, code, updated_at} are
// appended to the history and the live fields replaced with the proposed
// values, in a single aggregation-pipeline update.
//
// Because all field references in one pipeline stage read the document's
// pre-image, the snapshot and the overwrite are applied together on the
// server: no reader can observe one without the other, and when two edits
// interleave each appends its own pre-state (the history never skips an
// edit, last write wins on the live fields).
func (s *Store) SaveVersion(ctx context.Context, id primitive.ObjectID, title, code string) (*models.Snippet, error) {
	now := time.Now().UTC()
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"versions": bson.M{"$concatArrays": bson.A{
				"$versions",
				bson.A{bson.M{
					"title":       "$title",
					"code":        "$code",
					"captured_at": "$updated_at",
				}},
			}},
			"title":      title,
			"code":       code,
			"updated_at": now,
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sn models.Snippet
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&sn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sn, nil
}

// ListVersions returns the snippet's history newest-first. The stored
// order (capture order) is never mutated; the reversal happens on the
// returned copy only, so repeated reads are order-stable.
func (s *Store) ListVersions(ctx context.Context, id primitive.ObjectID) ([]models.Version, error) {
	sn, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]models.Version, len(sn.Versions))
	for i, v := range sn.Versions {
		out[len(sn.Versions)-1-i] = v
	}
	return out, nil
}

// AddComment appends a comment to the snippet.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, c models.Comment) (*models.Snippet, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sn models.Snippet
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": c}},
		opts,
	).Decode(&sn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sn, nil
}

// DeleteComment removes the comment with the given id, if present. A
// missing comment id is a success no-op (filter-out semantics); only a
// missing snippet is an error.
func (s *Store) DeleteComment(ctx context.Context, id primitive.ObjectID, commentID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the snippet and with it the embedded history and
// comments; nothing remains queryable afterwards.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
