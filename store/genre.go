package store

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GenreRepo is the Mongo-backed genre repository.
type GenreRepo struct {
	db *DB
}

func (db *DB) GenreRepo() *GenreRepo { return &GenreRepo{db: db} }

func (r *GenreRepo) coll() *mongo.Collection { return r.db.Genres() }

func (r *GenreRepo) Insert(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, genre)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *GenreRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	var genre models.Genre
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&genre)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GenreRepo) ByName(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	err := r.coll().FindOne(ctx, bson.M{"name": name}).Decode(&genre)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GenreRepo) All(ctx context.Context) ([]models.Genre, error) {
	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var genres []models.Genre
	if err := cur.All(ctx, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GenreRepo) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return existingIDs(ctx, r.coll(), ids)
}

func (r *GenreRepo) Update(ctx context.Context, genre *models.Genre) error {
	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": genre.ID}, genre)
	return err
}

func (r *GenreRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *GenreRepo) AddBookRef(ctx context.Context, genreIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": genreIDs}},
		bson.M{"$addToSet": bson.M{"books": bookID}})
	return err
}

func (r *GenreRepo) RemoveBookRef(ctx context.Context, genreIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": genreIDs}},
		bson.M{"$pull": bson.M{"books": bookID}})
	return err
}

func (r *GenreRepo) AddBooks(ctx context.Context, genreID primitive.ObjectID, bookIDs []primitive.ObjectID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": genreID},
		bson.M{"$addToSet": bson.M{"books": bson.M{"$each": bookIDs}}})
	return err
}
