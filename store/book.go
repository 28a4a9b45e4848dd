package store

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookRepo is the Mongo-backed book repository.
type BookRepo struct {
	db *DB
}

func (db *DB) BookRepo() *BookRepo { return &BookRepo{db: db} }

func (r *BookRepo) coll() *mongo.Collection { return r.db.Books() }

func (r *BookRepo) Insert(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, book)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *BookRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepo) ByTitle(ctx context.Context, title string) (*models.Book, error) {
	var book models.Book
	err := r.coll().FindOne(ctx, bson.M{"title": title}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepo) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *BookRepo) All(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, bson.M{})
}

// Sample returns up to n random books via $sample.
func (r *BookRepo) Sample(ctx context.Context, n int) ([]models.Book, error) {
	cur, err := r.coll().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": n}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Search matches query case-insensitively against title and keywords.
func (r *BookRepo) Search(ctx context.Context, query string) ([]models.Book, error) {
	re := primitive.Regex{Pattern: query, Options: "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"keywords": re},
	}})
}

func (r *BookRepo) find(ctx context.Context, filter bson.M) ([]models.Book, error) {
	cur, err := r.coll().Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepo) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return existingIDs(ctx, r.coll(), ids)
}

func (r *BookRepo) Update(ctx context.Context, book *models.Book) error {
	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": book.ID}, book)
	return err
}

func (r *BookRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *BookRepo) AddAuthorRef(ctx context.Context, bookIDs []primitive.ObjectID, authorID primitive.ObjectID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": bookIDs}},
		bson.M{"$addToSet": bson.M{"authors": authorID}})
	return err
}

func (r *BookRepo) RemoveAuthorRef(ctx context.Context, bookIDs []primitive.ObjectID, authorID primitive.ObjectID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": bookIDs}},
		bson.M{"$pull": bson.M{"authors": authorID}})
	return err
}

// RemoveAuthorRefAll pulls the author from every book referencing it,
// including stray references a targeted pull would miss.
func (r *BookRepo) RemoveAuthorRefAll(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"authors": authorID},
		bson.M{"$pull": bson.M{"authors": authorID}})
	return err
}

func (r *BookRepo) AddGenreRef(ctx context.Context, bookIDs []primitive.ObjectID, genreID primitive.ObjectID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": bookIDs}},
		bson.M{"$addToSet": bson.M{"genres": genreID}})
	return err
}

func (r *BookRepo) RemoveGenreRef(ctx context.Context, bookIDs []primitive.ObjectID, genreID primitive.ObjectID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": bookIDs}},
		bson.M{"$pull": bson.M{"genres": genreID}})
	return err
}

func (r *BookRepo) RemoveGenreRefAll(ctx context.Context, genreID primitive.ObjectID) error {
	_, err := r.coll().UpdateMany(ctx,
		bson.M{"genres": genreID},
		bson.M{"$pull": bson.M{"genres": genreID}})
	return err
}

func (r *BookRepo) AddGenres(ctx context.Context, bookID primitive.ObjectID, genreIDs []primitive.ObjectID) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{"$addToSet": bson.M{"genres": bson.M{"$each": genreIDs}}})
	return err
}

func (r *BookRepo) PushChapter(ctx context.Context, bookID primitive.ObjectID, ch models.Chapter) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{"$push": bson.M{"chapters": ch}})
	return err
}

func (r *BookRepo) SetChapterTitle(ctx context.Context, bookID primitive.ObjectID, chapterNo int, title string) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": bookID, "chapters.chapter_number": chapterNo},
		bson.M{"$set": bson.M{"chapters.$.title": title}})
	return err
}

func (r *BookRepo) PullChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{"$pull": bson.M{"chapters": bson.M{"chapter_number": chapterNo}}})
	return err
}

// ApplyRating appends the review reference and stores the new running
// average in a single update.
func (r *BookRepo) ApplyRating(ctx context.Context, bookID, reviewID primitive.ObjectID, average float64) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{
			"$push": bson.M{"ratings": reviewID},
			"$set":  bson.M{"averageRating": average},
		})
	return err
}

// existingIDs projects _id over the given ids, keeping request order for
// the ones that exist.
func existingIDs(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	found := make(map[primitive.ObjectID]bool, len(docs))
	for _, d := range docs {
		found[d.ID] = true
	}
	var out []primitive.ObjectID
	for _, id := range ids {
		if found[id] {
			out = append(out, id)
		}
	}
	return out, nil
}
