package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author carries the inverse of Book.Authors in BooksWritten; the two
// lists are kept symmetric by the catalog services.
type Author struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Biography      string               `bson:"biography" json:"biography"`
	ProfilePicture string               `bson:"profile_picture" json:"profile_picture"`
	DateOfBirth    *time.Time           `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Nationality    string               `bson:"nationality" json:"nationality"`
	BooksWritten   []primitive.ObjectID `bson:"booksWritten" json:"booksWritten"`
}
