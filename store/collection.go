package store

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionRepo is the Mongo-backed user-collection repository. Every
// mutation is filtered by owner so one user can never touch another's
// collection.
type CollectionRepo struct {
	db *DB
}

func (db *DB) CollectionRepo() *CollectionRepo { return &CollectionRepo{db: db} }

func (r *CollectionRepo) coll() *mongo.Collection { return r.db.Collections() }

func (r *CollectionRepo) Insert(ctx context.Context, collection *models.Collection) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, collection)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *CollectionRepo) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Collection, error) {
	cur, err := r.coll().Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var collections []models.Collection
	if err := cur.All(ctx, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CollectionRepo) ByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Collection, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *CollectionRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CollectionRepo) findOne(ctx context.Context, filter bson.M) (*models.Collection, error) {
	var collection models.Collection
	err := r.coll().FindOne(ctx, filter).Decode(&collection)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *CollectionRepo) AddBook(ctx context.Context, id, userID, bookID primitive.ObjectID) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$addToSet": bson.M{"books": bookID}})
	return err
}

func (r *CollectionRepo) RemoveBook(ctx context.Context, id, userID, bookID primitive.ObjectID) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$pull": bson.M{"books": bookID}})
	return err
}
