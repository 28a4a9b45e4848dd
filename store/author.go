package store

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthorRepo is the Mongo-backed author repository.
type AuthorRepo struct {
	db *DB
}

func (db *DB) AuthorRepo() *AuthorRepo { return &AuthorRepo{db: db} }

func (r *AuthorRepo) coll() *mongo.Collection { return r.db.Authors() }

func (r *AuthorRepo) Insert(ctx context.Context, author *models.Author) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, author)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *AuthorRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	var author models.Author
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorRepo) ByName(ctx context.Context, name string) (*models.Author, error) {
	var author models.Author
	err := r.coll().FindOne(ctx, bson.M{"name": name}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorRepo) All(ctx context.Context) ([]models.Author, error) {
	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var authors []models.Author
	if err := cur.All(ctx, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *AuthorRepo) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return existingIDs(ctx, r.coll(), ids)
}

func (r *AuthorRepo) Update(ctx context.Context, author *models.Author) error {
	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": author.ID}, author)
	return err
}

func (r *AuthorRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *AuthorRepo) AddBookRef(ctx context.Context, authorIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	if len(authorIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": authorIDs}},
		bson.M{"$addToSet": bson.M{"booksWritten": bookID}})
	return err
}

func (r *AuthorRepo) RemoveBookRef(ctx context.Context, authorIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	if len(authorIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": authorIDs}},
		bson.M{"$pull": bson.M{"booksWritten": bookID}})
	return err
}

func (r *AuthorRepo) AddBooksWritten(ctx context.Context, authorID primitive.ObjectID, bookIDs []primitive.ObjectID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": authorID},
		bson.M{"$addToSet": bson.M{"booksWritten": bson.M{"$each": bookIDs}}})
	return err
}
