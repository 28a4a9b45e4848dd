package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService records reviews and maintains the book's running
// average rating. The average is derived from the length of the book's
// rating-reference list, never by rescanning the reviews collection.
type ReviewService struct {
	Reviews ReviewRepository
	Books   BookRepository
	Tx      TxRunner
}

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// Create records one review per (user, book). A duplicate attempt fails
// with a conflict and leaves the average and rating list untouched.
func (s *ReviewService) Create(ctx context.Context, userID, bookID primitive.ObjectID, in CreateReviewInput) (*models.Review, error) {
	existing, err := s.Reviews.ByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return nil, Internal("failed to check existing review", err)
	}
	if existing != nil {
		return nil, Conflict("You have already reviewed this book")
	}

	book, err := s.Books.ByID(ctx, bookID)
	if err != nil {
		return nil, Internal("failed to load book", err)
	}
	if book == nil {
		return nil, NotFound("Book not found")
	}

	review := &models.Review{
		UserID:     userID,
		BookID:     bookID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewDate: time.Now(),
	}
	count := book.RatingCount()
	average := (book.AverageRating*float64(count) + float64(in.Rating)) / float64(count+1)

	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		id, err := s.Reviews.Insert(ctx, review)
		if err != nil {
			return err
		}
		review.ID = id
		return s.Books.ApplyRating(ctx, bookID, id, average)
	})
	if err != nil {
		// Concurrent duplicates race past the check above; the compound
		// unique index rejects the second insert and the transaction
		// aborts without touching the average.
		if isDup(err) {
			return nil, Conflict("You have already reviewed this book")
		}
		return nil, Internal("failed to create review", err)
	}
	return review, nil
}

func (s *ReviewService) ByBook(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.Reviews.ByBook(ctx, bookID)
	if err != nil {
		return nil, Internal("failed to list reviews", err)
	}
	return reviews, nil
}

// Delete removes the review document only. The book's rating list and
// average are an append-only audit trail and are not rolled back.
func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := s.Reviews.Delete(ctx, id)
	if err != nil {
		return nil, Internal("failed to delete review", err)
	}
	if review == nil {
		return nil, NotFound("No review found")
	}
	return review, nil
}
