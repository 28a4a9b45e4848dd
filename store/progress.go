package store

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressRepo is the Mongo-backed reading-progress repository.
type ProgressRepo struct {
	db *DB
}

func (db *DB) ProgressRepo() *ProgressRepo { return &ProgressRepo{db: db} }

func (r *ProgressRepo) coll() *mongo.Collection { return r.db.ReadingProgress() }

func (r *ProgressRepo) ByUserAndBook(ctx context.Context, userID, bookID primitive.ObjectID) (*models.ReadingProgress, error) {
	var progress models.ReadingProgress
	err := r.coll().FindOne(ctx, bson.M{"user_id": userID, "book_id": bookID}).Decode(&progress)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert writes the single cursor document for (user, book). The filter
// plus upsert keeps the pair unique; the compound index backs it up.
func (r *ProgressRepo) Upsert(ctx context.Context, userID, bookID primitive.ObjectID, chapterNo int, at time.Time) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"user_id": userID, "book_id": bookID},
		bson.M{"$set": bson.M{"chapter_id": chapterNo, "lastReadDate": at}},
		options.Update().SetUpsert(true))
	return err
}
