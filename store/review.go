package store

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepo is the Mongo-backed review repository.
type ReviewRepo struct {
	db *DB
}

func (db *DB) ReviewRepo() *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) coll() *mongo.Collection { return r.db.Reviews() }

func (r *ReviewRepo) Insert(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ReviewRepo) ByUserAndBook(ctx context.Context, userID, bookID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.coll().FindOne(ctx, bson.M{"user_id": userID, "book_id": bookID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepo) ByBook(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error) {
	cur, err := r.coll().Find(ctx, bson.M{"book_id": bookID},
		options.Find().SetSort(bson.M{"reviewDate": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.coll().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}
