package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReadingProgress is the per-(user, book) chapter cursor. It is always
// upserted, never multiplied; the compound unique index backs that up.
type ReadingProgress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	BookID       primitive.ObjectID `bson:"book_id" json:"book_id"`
	ChapterID    int                `bson:"chapter_id" json:"chapter_id"`
	LastReadDate time.Time          `bson:"lastReadDate" json:"lastReadDate"`
}
