package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repositories are the storage contracts the services are built on. The
// Mongo implementations live in the store package; tests supply mocks.
// Lookups return (nil, nil) when no document matches.

// TxRunner scopes a function to a multi-document transaction: commit on
// nil, abort on error. Every mutation sequence touching more than one
// collection runs under it.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type BookRepository interface {
	Insert(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	ByTitle(ctx context.Context, title string) (*models.Book, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error)
	All(ctx context.Context) ([]models.Book, error)
	Sample(ctx context.Context, n int) ([]models.Book, error)
	Search(ctx context.Context, query string) ([]models.Book, error)
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Inverse-reference maintenance ($addToSet / $pull semantics:
	// add-if-absent, remove-if-present, never erroring on absence).
	AddAuthorRef(ctx context.Context, bookIDs []primitive.ObjectID, authorID primitive.ObjectID) error
	RemoveAuthorRef(ctx context.Context, bookIDs []primitive.ObjectID, authorID primitive.ObjectID) error
	RemoveAuthorRefAll(ctx context.Context, authorID primitive.ObjectID) error
	AddGenreRef(ctx context.Context, bookIDs []primitive.ObjectID, genreID primitive.ObjectID) error
	RemoveGenreRef(ctx context.Context, bookIDs []primitive.ObjectID, genreID primitive.ObjectID) error
	RemoveGenreRefAll(ctx context.Context, genreID primitive.ObjectID) error
	AddGenres(ctx context.Context, bookID primitive.ObjectID, genreIDs []primitive.ObjectID) error

	// Denormalized chapter index.
	PushChapter(ctx context.Context, bookID primitive.ObjectID, ch models.Chapter) error
	SetChapterTitle(ctx context.Context, bookID primitive.ObjectID, chapterNo int, title string) error
	PullChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) error

	// ApplyRating appends the review reference and stores the new
	// running average in one update.
	ApplyRating(ctx context.Context, bookID, reviewID primitive.ObjectID, average float64) error
}

type AuthorRepository interface {
	Insert(ctx context.Context, author *models.Author) (primitive.ObjectID, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error)
	ByName(ctx context.Context, name string) (*models.Author, error)
	All(ctx context.Context) ([]models.Author, error)
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddBookRef(ctx context.Context, authorIDs []primitive.ObjectID, bookID primitive.ObjectID) error
	RemoveBookRef(ctx context.Context, authorIDs []primitive.ObjectID, bookID primitive.ObjectID) error
	AddBooksWritten(ctx context.Context, authorID primitive.ObjectID, bookIDs []primitive.ObjectID) error
}

type GenreRepository interface {
	Insert(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error)
	ByName(ctx context.Context, name string) (*models.Genre, error)
	All(ctx context.Context) ([]models.Genre, error)
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error)
	Update(ctx context.Context, genre *models.Genre) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddBookRef(ctx context.Context, genreIDs []primitive.ObjectID, bookID primitive.ObjectID) error
	RemoveBookRef(ctx context.Context, genreIDs []primitive.ObjectID, bookID primitive.ObjectID) error
	AddBooks(ctx context.Context, genreID primitive.ObjectID, bookIDs []primitive.ObjectID) error
}

type ContentRepository interface {
	Insert(ctx context.Context, content *models.BookContent) (primitive.ObjectID, error)
	ByBookAndChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) (*models.BookContent, error)
	Update(ctx context.Context, id primitive.ObjectID, title, content string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBook(ctx context.Context, bookID primitive.ObjectID) error
}

type ReviewRepository interface {
	Insert(ctx context.Context, review *models.Review) (primitive.ObjectID, error)
	ByUserAndBook(ctx context.Context, userID, bookID primitive.ObjectID) (*models.Review, error)
	ByBook(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
}

type CollectionRepository interface {
	Insert(ctx context.Context, collection *models.Collection) (primitive.ObjectID, error)
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Collection, error)
	ByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Collection, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddBook(ctx context.Context, id, userID, bookID primitive.ObjectID) error
	RemoveBook(ctx context.Context, id, userID, bookID primitive.ObjectID) error
}

type SubscriptionRepository interface {
	Insert(ctx context.Context, sub *models.Subscription) (primitive.ObjectID, error)
	ByUser(ctx context.Context, userID primitive.ObjectID) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	// Deactivate atomically flips the user's active subscription off and
	// stamps endDate; returns (nil, nil) when there is none.
	Deactivate(ctx context.Context, userID primitive.ObjectID, at time.Time) (*models.Subscription, error)
}

type PlanRepository interface {
	Insert(ctx context.Context, plan *models.SubscriptionPlan) (primitive.ObjectID, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error)
	ByType(ctx context.Context, planType string) (*models.SubscriptionPlan, error)
	All(ctx context.Context) ([]models.SubscriptionPlan, error)
	Update(ctx context.Context, plan *models.SubscriptionPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.PaymentHistory) (primitive.ObjectID, error)
}

type ProgressRepository interface {
	ByUserAndBook(ctx context.Context, userID, bookID primitive.ObjectID) (*models.ReadingProgress, error)
	// Upsert writes the single cursor document for (user, book); it
	// never creates a second one.
	Upsert(ctx context.Context, userID, bookID primitive.ObjectID, chapterNo int, at time.Time) error
}

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type BlacklistRepository interface {
	// Insert records a revoked token. Inserting an already-revoked token
	// is a no-op so revocation stays idempotent.
	Insert(ctx context.Context, token string, at time.Time) error
	Exists(ctx context.Context, token string) (bool, error)
}
