package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlacklistTTL is how long a revoked token stays in the blacklist. The
// store's TTL index deletes entries after this window; tokens themselves
// expire well before it elapses.
const BlacklistTTL = 3600 * time.Second

// BlacklistEntry is a revoked auth token. Entries self-expire via a TTL
// index on CreatedAt; there is no application-level sweep.
type BlacklistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"token"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
