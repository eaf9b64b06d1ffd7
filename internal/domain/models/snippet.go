// internal/domain/models/snippet.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Version is an immutable snapshot of a snippet's title and code, captured
// at the moment the live fields were superseded. CapturedAt carries the
// snippet's update timestamp from before that edit, so the history stays
// strictly chronological.
type Version struct {
	Title      string    `bson:"title" json:"title"`
	Code       string    `bson:"code" json:"code"`
	CapturedAt time.Time `bson:"captured_at" json:"captured_at"`
}

// Comment is a reader note on a snippet. UserName is the author's display
// name as it was at comment time; it is not re-resolved if the author later
// renames their account.
type Comment struct {
	ID        string             `bson:"id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserName  string             `bson:"user_name" json:"user_name"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Snippet is a shared code document with its version history and comments
// embedded. The live Title/Code always reflect the most recent write; that
// write appears in Versions only after it is superseded by a later edit.
type Snippet struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Code     string             `bson:"code" json:"code"`
	Language string             `bson:"language" json:"language"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`

	Versions []Version `bson:"versions" json:"versions"`
	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
