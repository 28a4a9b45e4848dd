package store

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContentRepo is the Mongo-backed chapter content repository.
type ContentRepo struct {
	db *DB
}

func (db *DB) ContentRepo() *ContentRepo { return &ContentRepo{db: db} }

func (r *ContentRepo) coll() *mongo.Collection { return r.db.BookContents() }

func (r *ContentRepo) Insert(ctx context.Context, content *models.BookContent) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, content)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ContentRepo) ByBookAndChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) (*models.BookContent, error) {
	var content models.BookContent
	err := r.coll().FindOne(ctx, bson.M{"book_id": bookID, "chapter_number": chapterNo}).Decode(&content)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepo) Update(ctx context.Context, id primitive.ObjectID, title, content string) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"title": title, "content": content}})
	return err
}

func (r *ContentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByBook drops every chapter of the book; part of the book
// deletion cascade.
func (r *ContentRepo) DeleteByBook(ctx context.Context, bookID primitive.ObjectID) error {
	_, err := r.coll().DeleteMany(ctx, bson.M{"book_id": bookID})
	return err
}
