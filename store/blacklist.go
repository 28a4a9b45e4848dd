package store

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BlacklistRepo is the Mongo-backed revoked-token store. Entries expire
// through the TTL index on createdAt; nothing here sweeps.
type BlacklistRepo struct {
	db *DB
}

func (db *DB) BlacklistRepo() *BlacklistRepo { return &BlacklistRepo{db: db} }

func (r *BlacklistRepo) coll() *mongo.Collection { return r.db.Blacklist() }

// Insert records a revoked token. A duplicate-key error means the token
// is already revoked, which is the outcome the caller wanted, so it is
// swallowed to keep revocation idempotent.
func (r *BlacklistRepo) Insert(ctx context.Context, token string, at time.Time) error {
	_, err := r.coll().InsertOne(ctx, models.BlacklistEntry{Token: token, CreatedAt: at})
	if err != nil && IsDup(err) {
		return nil
	}
	return err
}

func (r *BlacklistRepo) Exists(ctx context.Context, token string) (bool, error) {
	err := r.coll().FindOne(ctx, bson.M{"token": token}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
