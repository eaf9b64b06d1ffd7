// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a collaboration space owned by one user.
//
// Members and PendingMembers hold normalized email addresses rather than
// user references so that not-yet-registered people can be invited. The two
// sets are disjoint at every observable point: an invite moves an email into
// PendingMembers only when it is in neither set, and an accept moves it from
// PendingMembers to Members in a single update.
//
// The owner is implicitly part of the project and is not enumerated in
// Members.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Members        []string `bson:"members" json:"members"`
	PendingMembers []string `bson:"pending_members" json:"pending_members"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
