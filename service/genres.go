package service

import (
	"context"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenreService keeps Genre.Books and Book.Genres symmetric. Unlike book
// and author creation, genre ids are never strict: unknown or malformed
// book ids are dropped on every operation.
type GenreService struct {
	Genres GenreRepository
	Books  BookRepository
	Tx     TxRunner
}

type CreateGenreInput struct {
	Name        string   `json:"name" validate:"required"`
	ImageURL    string   `json:"imageURL" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Books       []string `json:"books"`
}

type UpdateGenreInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	ImageURL    *string  `json:"imageURL" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Books       []string `json:"books"`
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.Genres.All(ctx)
	if err != nil {
		return nil, Internal("failed to list genres", err)
	}
	return genres, nil
}

func (s *GenreService) Get(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	genre, err := s.Genres.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load genre", err)
	}
	if genre == nil {
		return nil, NotFound("Genre not found")
	}
	return genre, nil
}

func (s *GenreService) Create(ctx context.Context, in CreateGenreInput) (*models.Genre, error) {
	existing, err := s.Genres.ByName(ctx, in.Name)
	if err != nil {
		return nil, Internal("failed to check genre name", err)
	}
	if existing != nil {
		return nil, Conflict("Genre with this name already exists")
	}

	bookIDs, err := s.existingBooks(ctx, in.Books)
	if err != nil {
		return nil, err
	}
	genre := &models.Genre{
		Name:        in.Name,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Books:       bookIDs,
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		id, err := s.Genres.Insert(ctx, genre)
		if err != nil {
			return err
		}
		genre.ID = id
		return s.Books.AddGenreRef(ctx, bookIDs, id)
	})
	if err != nil {
		return nil, Internal("failed to create genre", err)
	}
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id primitive.ObjectID, in UpdateGenreInput) (*models.Genre, error) {
	genre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		genre.Name = *in.Name
	}
	if in.ImageURL != nil {
		genre.ImageURL = *in.ImageURL
	}
	if in.Description != nil {
		genre.Description = *in.Description
	}

	var toAdd, toRemove []primitive.ObjectID
	if in.Books != nil {
		valid, err := s.existingBooks(ctx, in.Books)
		if err != nil {
			return nil, err
		}
		toAdd, toRemove = diffIDs(genre.Books, valid)
		genre.Books = valid
	}

	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Books.AddGenreRef(ctx, toAdd, id); err != nil {
			return err
		}
		if err := s.Books.RemoveGenreRef(ctx, toRemove, id); err != nil {
			return err
		}
		return s.Genres.Update(ctx, genre)
	})
	if err != nil {
		return nil, Internal("failed to update genre", err)
	}
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	genre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Genres.Delete(ctx, id); err != nil {
			return err
		}
		return s.Books.RemoveGenreRefAll(ctx, id)
	})
	if err != nil {
		return nil, Internal("failed to delete genre", err)
	}
	return genre, nil
}

func (s *GenreService) AddBooks(ctx context.Context, id primitive.ObjectID, books []string) (*models.Genre, error) {
	if len(books) == 0 {
		return nil, Validation("Please provide an array of book IDs")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	valid, err := s.existingBooks(ctx, books)
	if err != nil {
		return nil, err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Genres.AddBooks(ctx, id, valid); err != nil {
			return err
		}
		return s.Books.AddGenreRef(ctx, valid, id)
	})
	if err != nil {
		return nil, Internal("failed to add books to genre", err)
	}
	return s.Get(ctx, id)
}

func (s *GenreService) existingBooks(ctx context.Context, raw []string) ([]primitive.ObjectID, error) {
	ids, _ := parseIDs(raw, false)
	valid, err := s.Books.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, Internal("failed to verify book ids", err)
	}
	return valid, nil
}
