package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionService manages user-owned book collections. Every mutation
// is scoped to the owner; a collection is invisible to other users'
// writes.
type CollectionService struct {
	Collections CollectionRepository
	Books       BookRepository
}

type CreateCollectionInput struct {
	Name string `json:"name" validate:"required"`
}

type AddCollectionBookInput struct {
	BookID string `json:"book_id" validate:"required"`
}

func (s *CollectionService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Collection, error) {
	collections, err := s.Collections.ByUser(ctx, userID)
	if err != nil {
		return nil, Internal("failed to list collections", err)
	}
	return collections, nil
}

func (s *CollectionService) Create(ctx context.Context, userID primitive.ObjectID, in CreateCollectionInput) (*models.Collection, error) {
	collection := &models.Collection{
		UserID:    userID,
		Name:      in.Name,
		Books:     []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	id, err := s.Collections.Insert(ctx, collection)
	if err != nil {
		return nil, Internal("failed to create collection", err)
	}
	collection.ID = id
	return collection, nil
}

func (s *CollectionService) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	collection, err := s.Collections.ByIDAndUser(ctx, id, userID)
	if err != nil {
		return Internal("failed to load collection", err)
	}
	if collection == nil {
		return NotFound("Collection not found or not authorized")
	}
	if err := s.Collections.Delete(ctx, id); err != nil {
		return Internal("failed to delete collection", err)
	}
	return nil
}

// ListBooks resolves the collection's book references to full documents.
func (s *CollectionService) ListBooks(ctx context.Context, id primitive.ObjectID) ([]models.Book, error) {
	collection, err := s.Collections.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load collection", err)
	}
	if collection == nil {
		return nil, NotFound("Collection not found")
	}
	if len(collection.Books) == 0 {
		return []models.Book{}, nil
	}
	books, err := s.Books.ByIDs(ctx, collection.Books)
	if err != nil {
		return nil, Internal("failed to load collection books", err)
	}
	return books, nil
}

func (s *CollectionService) AddBook(ctx context.Context, id, userID primitive.ObjectID, in AddCollectionBookInput) (*models.Collection, error) {
	collection, err := s.Collections.ByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, Internal("failed to load collection", err)
	}
	if collection == nil {
		return nil, NotFound("Collection not found or not authorized")
	}
	bookID, err := primitive.ObjectIDFromHex(in.BookID)
	if err != nil {
		return nil, Validation("invalid book id")
	}
	book, err := s.Books.ByID(ctx, bookID)
	if err != nil {
		return nil, Internal("failed to load book", err)
	}
	if book == nil {
		return nil, NotFound("Book not found")
	}
	if err := s.Collections.AddBook(ctx, id, userID, bookID); err != nil {
		return nil, Internal("failed to add book to collection", err)
	}
	updated, err := s.Collections.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load collection", err)
	}
	return updated, nil
}

func (s *CollectionService) RemoveBook(ctx context.Context, id, userID, bookID primitive.ObjectID) (*models.Collection, error) {
	collection, err := s.Collections.ByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, Internal("failed to load collection", err)
	}
	if collection == nil {
		return nil, NotFound("Collection not found or not authorized")
	}
	if err := s.Collections.RemoveBook(ctx, id, userID, bookID); err != nil {
		return nil, Internal("failed to remove book from collection", err)
	}
	updated, err := s.Collections.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load collection", err)
	}
	return updated, nil
}
