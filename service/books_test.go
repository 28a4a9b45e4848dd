package service

import (
	"context"
	"testing"

	"github.com/boogo/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBookService(books *MockBookRepo, authors *MockAuthorRepo, genres *MockGenreRepo, contents *MockContentRepo) *BookService {
	return &BookService{Books: books, Authors: authors, Genres: genres, Contents: contents, Tx: fakeTx{}}
}

func TestBookCreate_AddsInverseReferences(t *testing.T) {
	books := new(MockBookRepo)
	authors := new(MockAuthorRepo)
	genres := new(MockGenreRepo)
	svc := newBookService(books, authors, genres, new(MockContentRepo))

	authorID := primitive.NewObjectID()
	genreID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	books.On("ByTitle", mock.Anything, "Dune").Return(nil, nil)
	authors.On("ExistingIDs", mock.Anything, []primitive.ObjectID{authorID}).Return([]primitive.ObjectID{authorID}, nil)
	genres.On("ExistingIDs", mock.Anything, []primitive.ObjectID{genreID}).Return([]primitive.ObjectID{genreID}, nil)
	books.On("Insert", mock.Anything, mock.AnythingOfType("*models.Book")).Return(bookID, nil)
	authors.On("AddBookRef", mock.Anything, []primitive.ObjectID{authorID}, bookID).Return(nil)
	genres.On("AddBookRef", mock.Anything, []primitive.ObjectID{genreID}, bookID).Return(nil)

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title:         "Dune",
		Description:   "desert planet",
		CoverImage:    "https://example.com/dune.jpg",
		PublishedYear: 1965,
		Authors:       []string{authorID.Hex()},
		Genres:        []string{genreID.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, bookID, book.ID)
	authors.AssertExpectations(t)
	genres.AssertExpectations(t)
}

func TestBookCreate_MalformedAuthorIDRejected(t *testing.T) {
	books := new(MockBookRepo)
	svc := newBookService(books, new(MockAuthorRepo), new(MockGenreRepo), new(MockContentRepo))

	books.On("ByTitle", mock.Anything, "Dune").Return(nil, nil)

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title:         "Dune",
		Description:   "desert planet",
		CoverImage:    "https://example.com/dune.jpg",
		PublishedYear: 1965,
		Authors:       []string{"not-a-hex-id"},
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	books.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestBookCreate_UnknownAuthorIDRejected(t *testing.T) {
	books := new(MockBookRepo)
	authors := new(MockAuthorRepo)
	svc := newBookService(books, authors, new(MockGenreRepo), new(MockContentRepo))

	unknown := primitive.NewObjectID()
	books.On("ByTitle", mock.Anything, "Dune").Return(nil, nil)
	authors.On("ExistingIDs", mock.Anything, []primitive.ObjectID{unknown}).Return([]primitive.ObjectID{}, nil)

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title:         "Dune",
		Description:   "desert planet",
		CoverImage:    "https://example.com/dune.jpg",
		PublishedYear: 1965,
		Authors:       []string{unknown.Hex()},
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Some author IDs are invalid", MessageOf(err))
}

func TestBookCreate_DuplicateTitle(t *testing.T) {
	books := new(MockBookRepo)
	svc := newBookService(books, new(MockAuthorRepo), new(MockGenreRepo), new(MockContentRepo))

	books.On("ByTitle", mock.Anything, "Dune").Return(&models.Book{ID: primitive.NewObjectID()}, nil)

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title:         "Dune",
		Description:   "desert planet",
		CoverImage:    "https://example.com/dune.jpg",
		PublishedYear: 1965,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestBookUpdate_DiffSyncsAuthorReferences(t *testing.T) {
	books := new(MockBookRepo)
	authors := new(MockAuthorRepo)
	genres := new(MockGenreRepo)
	svc := newBookService(books, authors, genres, new(MockContentRepo))

	bookID := primitive.NewObjectID()
	keep := primitive.NewObjectID()
	removed := primitive.NewObjectID()
	added := primitive.NewObjectID()

	books.On("ByID", mock.Anything, bookID).Return(&models.Book{
		ID:      bookID,
		Title:   "Dune",
		Authors: []primitive.ObjectID{keep, removed},
	}, nil)
	authors.On("ExistingIDs", mock.Anything, []primitive.ObjectID{keep, added}).Return([]primitive.ObjectID{keep, added}, nil)
	authors.On("AddBookRef", mock.Anything, []primitive.ObjectID{added}, bookID).Return(nil)
	authors.On("RemoveBookRef", mock.Anything, []primitive.ObjectID{removed}, bookID).Return(nil)
	genres.On("AddBookRef", mock.Anything, []primitive.ObjectID(nil), bookID).Return(nil)
	genres.On("RemoveBookRef", mock.Anything, []primitive.ObjectID(nil), bookID).Return(nil)
	books.On("Update", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.Update(context.Background(), bookID, UpdateBookInput{
		Authors: []string{keep.Hex(), added.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{keep, added}, book.Authors)
	authors.AssertExpectations(t)
}

func TestBookUpdate_UnknownIDsSilentlyDropped(t *testing.T) {
	books := new(MockBookRepo)
	authors := new(MockAuthorRepo)
	genres := new(MockGenreRepo)
	svc := newBookService(books, authors, genres, new(MockContentRepo))

	bookID := primitive.NewObjectID()
	known := primitive.NewObjectID()
	unknown := primitive.NewObjectID()

	books.On("ByID", mock.Anything, bookID).Return(&models.Book{ID: bookID, Title: "Dune"}, nil)
	authors.On("ExistingIDs", mock.Anything, []primitive.ObjectID{known, unknown}).Return([]primitive.ObjectID{known}, nil)
	authors.On("AddBookRef", mock.Anything, []primitive.ObjectID{known}, bookID).Return(nil)
	authors.On("RemoveBookRef", mock.Anything, []primitive.ObjectID(nil), bookID).Return(nil)
	genres.On("AddBookRef", mock.Anything, []primitive.ObjectID(nil), bookID).Return(nil)
	genres.On("RemoveBookRef", mock.Anything, []primitive.ObjectID(nil), bookID).Return(nil)
	books.On("Update", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.Update(context.Background(), bookID, UpdateBookInput{
		Authors: []string{known.Hex(), "junk", unknown.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{known}, book.Authors)
}

func TestBookDelete_Cascades(t *testing.T) {
	books := new(MockBookRepo)
	authors := new(MockAuthorRepo)
	genres := new(MockGenreRepo)
	contents := new(MockContentRepo)
	svc := newBookService(books, authors, genres, contents)

	bookID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()
	genreID := primitive.NewObjectID()

	books.On("ByID", mock.Anything, bookID).Return(&models.Book{
		ID:      bookID,
		Authors: []primitive.ObjectID{authorID},
		Genres:  []primitive.ObjectID{genreID},
	}, nil)
	authors.On("RemoveBookRef", mock.Anything, []primitive.ObjectID{authorID}, bookID).Return(nil)
	genres.On("RemoveBookRef", mock.Anything, []primitive.ObjectID{genreID}, bookID).Return(nil)
	contents.On("DeleteByBook", mock.Anything, bookID).Return(nil)
	books.On("Delete", mock.Anything, bookID).Return(nil)

	_, err := svc.Delete(context.Background(), bookID)
	require.NoError(t, err)
	books.AssertExpectations(t)
	authors.AssertExpectations(t)
	genres.AssertExpectations(t)
	contents.AssertExpectations(t)
}

func TestBookChapters_SortedByNumber(t *testing.T) {
	books := new(MockBookRepo)
	svc := newBookService(books, new(MockAuthorRepo), new(MockGenreRepo), new(MockContentRepo))

	bookID := primitive.NewObjectID()
	books.On("ByID", mock.Anything, bookID).Return(&models.Book{
		ID: bookID,
		Chapters: []models.Chapter{
			{ChapterNumber: 3, Title: "Three"},
			{ChapterNumber: 1, Title: "One"},
			{ChapterNumber: 2, Title: "Two"},
		},
	}, nil)

	chapters, err := svc.Chapters(context.Background(), bookID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, 1, chapters[0].ChapterNumber)
	assert.Equal(t, 2, chapters[1].ChapterNumber)
	assert.Equal(t, 3, chapters[2].ChapterNumber)
}

func TestAuthorRemoveBook_NotInList(t *testing.T) {
	authors := new(MockAuthorRepo)
	books := new(MockBookRepo)
	svc := &AuthorService{Authors: authors, Books: books, Tx: fakeTx{}}

	authorID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	authors.On("ByID", mock.Anything, authorID).Return(&models.Author{
		ID:           authorID,
		BooksWritten: []primitive.ObjectID{primitive.NewObjectID()},
	}, nil)

	_, err := svc.RemoveBook(context.Background(), authorID, bookID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Book not found in author's list", MessageOf(err))
	books.AssertNotCalled(t, "RemoveAuthorRef", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthorDelete_PullsFromAllBooks(t *testing.T) {
	authors := new(MockAuthorRepo)
	books := new(MockBookRepo)
	svc := &AuthorService{Authors: authors, Books: books, Tx: fakeTx{}}

	authorID := primitive.NewObjectID()
	authors.On("ByID", mock.Anything, authorID).Return(&models.Author{ID: authorID}, nil)
	authors.On("Delete", mock.Anything, authorID).Return(nil)
	books.On("RemoveAuthorRefAll", mock.Anything, authorID).Return(nil)

	_, err := svc.Delete(context.Background(), authorID)
	require.NoError(t, err)
	books.AssertExpectations(t)
}
