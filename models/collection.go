package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is owned exclusively by its creating user; every mutation
// is filtered by (collection id, owner id).
type Collection struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Name      string               `bson:"name" json:"name"`
	Books     []primitive.ObjectID `bson:"books" json:"books"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}
