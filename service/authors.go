package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthorService mirrors BookService from the author side: the
// booksWritten list is the inverse of Book.Authors and both are updated
// inside one transaction.
type AuthorService struct {
	Authors AuthorRepository
	Books   BookRepository
	Tx      TxRunner
}

type CreateAuthorInput struct {
	Name           string     `json:"name" validate:"required"`
	Biography      string     `json:"biography" validate:"required"`
	ProfilePicture string     `json:"profile_picture" validate:"required"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Nationality    string     `json:"nationality" validate:"required"`
	BooksWritten   []string   `json:"booksWritten"`
}

type UpdateAuthorInput struct {
	Name           *string    `json:"name" validate:"omitempty,min=1"`
	Biography      *string    `json:"biography" validate:"omitempty,min=1"`
	ProfilePicture *string    `json:"profile_picture" validate:"omitempty,min=1"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Nationality    *string    `json:"nationality" validate:"omitempty,min=1"`
	BooksWritten   []string   `json:"booksWritten"`
}

func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	authors, err := s.Authors.All(ctx)
	if err != nil {
		return nil, Internal("failed to list authors", err)
	}
	return authors, nil
}

func (s *AuthorService) Get(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	author, err := s.Authors.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load author", err)
	}
	if author == nil {
		return nil, NotFound("Author not found")
	}
	return author, nil
}

// Create inserts the author and adds it to every referenced book's
// authors list. Like book creation, ids are strict: malformed or
// unknown book ids are a validation error.
func (s *AuthorService) Create(ctx context.Context, in CreateAuthorInput) (*models.Author, error) {
	existing, err := s.Authors.ByName(ctx, in.Name)
	if err != nil {
		return nil, Internal("failed to check author name", err)
	}
	if existing != nil {
		return nil, Conflict("Author with this name already exists")
	}

	bookIDs, err := parseIDs(in.BooksWritten, true)
	if err != nil {
		return nil, err
	}
	valid, err := s.Books.ExistingIDs(ctx, bookIDs)
	if err != nil {
		return nil, Internal("failed to verify book ids", err)
	}
	if len(valid) != len(bookIDs) {
		return nil, Validation("Some book IDs are invalid")
	}

	author := &models.Author{
		Name:           in.Name,
		Biography:      in.Biography,
		ProfilePicture: in.ProfilePicture,
		DateOfBirth:    in.DateOfBirth,
		Nationality:    in.Nationality,
		BooksWritten:   bookIDs,
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		id, err := s.Authors.Insert(ctx, author)
		if err != nil {
			return err
		}
		author.ID = id
		return s.Books.AddAuthorRef(ctx, bookIDs, id)
	})
	if err != nil {
		return nil, Internal("failed to create author", err)
	}
	return author, nil
}

// Update merges fields and, when booksWritten is supplied, reconciles
// Book.Authors across the diff. Unknown ids are dropped.
func (s *AuthorService) Update(ctx context.Context, id primitive.ObjectID, in UpdateAuthorInput) (*models.Author, error) {
	author, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		author.Name = *in.Name
	}
	if in.Biography != nil {
		author.Biography = *in.Biography
	}
	if in.ProfilePicture != nil {
		author.ProfilePicture = *in.ProfilePicture
	}
	if in.DateOfBirth != nil {
		author.DateOfBirth = in.DateOfBirth
	}
	if in.Nationality != nil {
		author.Nationality = *in.Nationality
	}

	var toAdd, toRemove []primitive.ObjectID
	if in.BooksWritten != nil {
		ids, _ := parseIDs(in.BooksWritten, false)
		valid, err := s.Books.ExistingIDs(ctx, ids)
		if err != nil {
			return nil, Internal("failed to verify book ids", err)
		}
		toAdd, toRemove = diffIDs(author.BooksWritten, valid)
		author.BooksWritten = valid
	}

	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Books.AddAuthorRef(ctx, toAdd, id); err != nil {
			return err
		}
		if err := s.Books.RemoveAuthorRef(ctx, toRemove, id); err != nil {
			return err
		}
		return s.Authors.Update(ctx, author)
	})
	if err != nil {
		return nil, Internal("failed to update author", err)
	}
	return author, nil
}

// Delete removes the author and pulls it from every book referencing
// it, stray references included.
func (s *AuthorService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	author, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Authors.Delete(ctx, id); err != nil {
			return err
		}
		return s.Books.RemoveAuthorRefAll(ctx, id)
	})
	if err != nil {
		return nil, Internal("failed to delete author", err)
	}
	return author, nil
}

// AddBooks attaches books to the author on both sides. Unknown ids are
// dropped.
func (s *AuthorService) AddBooks(ctx context.Context, id primitive.ObjectID, books []string) (*models.Author, error) {
	if len(books) == 0 {
		return nil, Validation("Please provide an array of book IDs")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	ids, _ := parseIDs(books, false)
	valid, err := s.Books.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, Internal("failed to verify book ids", err)
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Books.AddAuthorRef(ctx, valid, id); err != nil {
			return err
		}
		return s.Authors.AddBooksWritten(ctx, id, valid)
	})
	if err != nil {
		return nil, Internal("failed to add books to author", err)
	}
	return s.Get(ctx, id)
}

// RemoveBook detaches one book from the author on both sides.
func (s *AuthorService) RemoveBook(ctx context.Context, id, bookID primitive.ObjectID) (*models.Author, error) {
	author, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !containsID(author.BooksWritten, bookID) {
		return nil, NotFound("Book not found in author's list")
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Books.RemoveAuthorRef(ctx, []primitive.ObjectID{bookID}, id); err != nil {
			return err
		}
		return s.Authors.RemoveBookRef(ctx, []primitive.ObjectID{id}, bookID)
	})
	if err != nil {
		return nil, Internal("failed to remove book from author", err)
	}
	return s.Get(ctx, id)
}
