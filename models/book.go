package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter is the denormalized per-book chapter index entry. Each entry
// mirrors exactly one BookContent document by (book_id, chapter_number).
type Chapter struct {
	ChapterNumber int    `bson:"chapter_number" json:"chapter_number"`
	Title         string `bson:"title" json:"title"`
}

type Book struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	CoverImage    string               `bson:"coverImage" json:"coverImage"`
	PublishedYear int                  `bson:"publishedYear" json:"publishedYear"`
	Genres        []primitive.ObjectID `bson:"genres" json:"genres"`
	Authors       []primitive.ObjectID `bson:"authors" json:"authors"`
	Ratings       []primitive.ObjectID `bson:"ratings" json:"ratings"`
	Chapters      []Chapter            `bson:"chapters" json:"chapters"`
	Keywords      []string             `bson:"keywords,omitempty" json:"keywords,omitempty"`
	ReadCount     int64                `bson:"readCount" json:"readCount"`
	AverageRating float64              `bson:"averageRating" json:"averageRating"`
	Popularity    float64              `bson:"popularityScore" json:"popularityScore"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

// RatingCount is the number of ratings recorded against the book. The
// running average is maintained from this count, never by rescanning the
// reviews collection.
func (b *Book) RatingCount() int {
	return len(b.Ratings)
}

// BookContent holds the actual chapter text, kept out of Book so the
// catalog can be listed without dragging chapter bodies along.
type BookContent struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID        primitive.ObjectID `bson:"book_id" json:"book_id"`
	ChapterNumber int                `bson:"chapter_number" json:"chapter_number"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"`
}
