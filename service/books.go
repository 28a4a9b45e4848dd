package service

import (
	"context"
	"sort"
	"time"

	"github.com/boogo/backend/models"
	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookService owns the book side of the catalog: CRUD plus keeping the
// author/genre inverse reference lists in step with Book.Authors and
// Book.Genres. Every multi-collection mutation runs in a transaction.
type BookService struct {
	Books    BookRepository
	Authors  AuthorRepository
	Genres   GenreRepository
	Contents ContentRepository
	Tx       TxRunner
}

type CreateBookInput struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	CoverImage    string   `json:"coverImage" validate:"required"`
	PublishedYear int      `json:"publishedYear" validate:"required,gt=0"`
	Authors       []string `json:"authors"`
	Genres        []string `json:"genres"`
	Keywords      []string `json:"keywords"`
}

type UpdateBookInput struct {
	Title         *string  `json:"title" validate:"omitempty,min=1"`
	Description   *string  `json:"description" validate:"omitempty,min=1"`
	CoverImage    *string  `json:"coverImage" validate:"omitempty,min=1"`
	PublishedYear *int     `json:"publishedYear" validate:"omitempty,gt=0"`
	Authors       []string `json:"authors"`
	Genres        []string `json:"genres"`
	Keywords      []string `json:"keywords"`
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.Books.All(ctx)
	if err != nil {
		return nil, Internal("failed to list books", err)
	}
	return books, nil
}

func (s *BookService) RandomTen(ctx context.Context) ([]models.Book, error) {
	books, err := s.Books.Sample(ctx, 10)
	if err != nil {
		return nil, Internal("failed to sample books", err)
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	book, err := s.Books.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load book", err)
	}
	if book == nil {
		return nil, NotFound("Book not found")
	}
	return book, nil
}

// Chapters returns the denormalized chapter index ordered by number.
func (s *BookService) Chapters(ctx context.Context, id primitive.ObjectID) ([]models.Chapter, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	chapters := make([]models.Chapter, len(book.Chapters))
	copy(chapters, book.Chapters)
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})
	return chapters, nil
}

func (s *BookService) Search(ctx context.Context, query string) ([]models.Book, error) {
	books, err := s.Books.Search(ctx, query)
	if err != nil {
		return nil, Internal("failed to search books", err)
	}
	return books, nil
}

// Create inserts the book and adds its id to every referenced author's
// booksWritten and genre's books list. Creation is strict about ids:
// malformed or unknown author/genre ids fail validation instead of
// being dropped.
func (s *BookService) Create(ctx context.Context, in CreateBookInput) (*models.Book, error) {
	existing, err := s.Books.ByTitle(ctx, in.Title)
	if err != nil {
		return nil, Internal("failed to check book title", err)
	}
	if existing != nil {
		return nil, Conflict("Book with this title already exists")
	}

	authorIDs, err := parseIDs(in.Authors, true)
	if err != nil {
		return nil, err
	}
	genreIDs, err := parseIDs(in.Genres, true)
	if err != nil {
		return nil, err
	}
	if err := s.requireAllAuthors(ctx, authorIDs); err != nil {
		return nil, err
	}
	if err := s.requireAllGenres(ctx, genreIDs); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:         in.Title,
		Description:   in.Description,
		CoverImage:    in.CoverImage,
		PublishedYear: in.PublishedYear,
		Authors:       authorIDs,
		Genres:        genreIDs,
		Keywords:      in.Keywords,
		CreatedAt:     time.Now(),
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		id, err := s.Books.Insert(ctx, book)
		if err != nil {
			return err
		}
		book.ID = id
		if err := s.Authors.AddBookRef(ctx, authorIDs, id); err != nil {
			return err
		}
		return s.Genres.AddBookRef(ctx, genreIDs, id)
	})
	if err != nil {
		if isDup(err) {
			return nil, Conflict("Book with this title already exists")
		}
		return nil, Internal("failed to create book", err)
	}
	return book, nil
}

// Update applies field changes and reconciles inverse references from
// the authors/genres diff. Unknown or malformed ids in an update are
// silently dropped.
func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, in UpdateBookInput) (*models.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.CoverImage != nil {
		book.CoverImage = *in.CoverImage
	}
	if in.PublishedYear != nil {
		book.PublishedYear = *in.PublishedYear
	}
	if in.Keywords != nil {
		book.Keywords = in.Keywords
	}

	var addAuthors, removeAuthors, addGenres, removeGenres []primitive.ObjectID
	if in.Authors != nil {
		next, err := s.existingAuthors(ctx, in.Authors)
		if err != nil {
			return nil, err
		}
		addAuthors, removeAuthors = diffIDs(book.Authors, next)
		book.Authors = next
	}
	if in.Genres != nil {
		next, err := s.existingGenres(ctx, in.Genres)
		if err != nil {
			return nil, err
		}
		addGenres, removeGenres = diffIDs(book.Genres, next)
		book.Genres = next
	}

	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Authors.AddBookRef(ctx, addAuthors, id); err != nil {
			return err
		}
		if err := s.Authors.RemoveBookRef(ctx, removeAuthors, id); err != nil {
			return err
		}
		if err := s.Genres.AddBookRef(ctx, addGenres, id); err != nil {
			return err
		}
		if err := s.Genres.RemoveBookRef(ctx, removeGenres, id); err != nil {
			return err
		}
		return s.Books.Update(ctx, book)
	})
	if err != nil {
		if isDup(err) {
			return nil, Conflict("Book with this title already exists")
		}
		return nil, Internal("failed to update book", err)
	}
	return book, nil
}

// Delete cascades: the book id is pulled from every referencing author
// and genre, all chapter content rows go, then the book itself.
func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Authors.RemoveBookRef(ctx, book.Authors, id); err != nil {
			return err
		}
		if err := s.Genres.RemoveBookRef(ctx, book.Genres, id); err != nil {
			return err
		}
		if err := s.Contents.DeleteByBook(ctx, id); err != nil {
			return err
		}
		return s.Books.Delete(ctx, id)
	})
	if err != nil {
		return nil, Internal("failed to delete book", err)
	}
	return book, nil
}

// AddGenres attaches genres to the book and the book to each genre.
// Unknown ids are dropped, not errors.
func (s *BookService) AddGenres(ctx context.Context, id primitive.ObjectID, genres []string) (*models.Book, error) {
	if len(genres) == 0 {
		return nil, Validation("Please provide an array of genre IDs")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	valid, err := s.existingGenres(ctx, genres)
	if err != nil {
		return nil, err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Books.AddGenres(ctx, id, valid); err != nil {
			return err
		}
		return s.Genres.AddBookRef(ctx, valid, id)
	})
	if err != nil {
		return nil, Internal("failed to add genres to book", err)
	}
	return s.Get(ctx, id)
}

func (s *BookService) requireAllAuthors(ctx context.Context, ids []primitive.ObjectID) error {
	valid, err := s.Authors.ExistingIDs(ctx, ids)
	if err != nil {
		return Internal("failed to verify author ids", err)
	}
	if len(valid) != len(ids) {
		return Validation("Some author IDs are invalid")
	}
	return nil
}

func (s *BookService) requireAllGenres(ctx context.Context, ids []primitive.ObjectID) error {
	valid, err := s.Genres.ExistingIDs(ctx, ids)
	if err != nil {
		return Internal("failed to verify genre ids", err)
	}
	if len(valid) != len(ids) {
		return Validation("Some genre IDs are invalid")
	}
	return nil
}

func (s *BookService) existingAuthors(ctx context.Context, raw []string) ([]primitive.ObjectID, error) {
	ids, _ := parseIDs(raw, false)
	valid, err := s.Authors.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, Internal("failed to verify author ids", err)
	}
	return valid, nil
}

func (s *BookService) existingGenres(ctx context.Context, raw []string) ([]primitive.ObjectID, error) {
	ids, _ := parseIDs(raw, false)
	valid, err := s.Genres.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, Internal("failed to verify genre ids", err)
	}
	return valid, nil
}

func isDup(err error) bool {
	return mongo.IsDuplicateKeyError(pkgerrors.Cause(err))
}
