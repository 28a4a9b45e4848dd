package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Genre carries the inverse of Book.Genres in Books.
type Genre struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	ImageURL    string               `bson:"imageURL" json:"imageURL"`
	Description string               `bson:"description" json:"description"`
	Books       []primitive.ObjectID `bson:"books" json:"books"`
}
