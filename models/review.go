package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is unique per (user_id, book_id); the store enforces this with
// a compound unique index as the last line of defense against races.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	BookID     primitive.ObjectID `bson:"book_id" json:"book_id"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	ReviewDate time.Time          `bson:"reviewDate" json:"reviewDate"`
}
