package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTx runs the function directly; transaction semantics are the
// store's concern, the services only need the callback invoked.
type fakeTx struct{}

func (fakeTx) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Insert(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockBookRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepo) ByTitle(ctx context.Context, title string) (*models.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepo) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) All(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) Sample(ctx context.Context, n int) ([]models.Book, error) {
	args := m.Called(ctx, n)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) Search(ctx context.Context, query string) ([]models.Book, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, book *models.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockBookRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookRepo) AddAuthorRef(ctx context.Context, bookIDs []primitive.ObjectID, authorID primitive.ObjectID) error {
	return m.Called(ctx, bookIDs, authorID).Error(0)
}

func (m *MockBookRepo) RemoveAuthorRef(ctx context.Context, bookIDs []primitive.ObjectID, authorID primitive.ObjectID) error {
	return m.Called(ctx, bookIDs, authorID).Error(0)
}

func (m *MockBookRepo) RemoveAuthorRefAll(ctx context.Context, authorID primitive.ObjectID) error {
	return m.Called(ctx, authorID).Error(0)
}

func (m *MockBookRepo) AddGenreRef(ctx context.Context, bookIDs []primitive.ObjectID, genreID primitive.ObjectID) error {
	return m.Called(ctx, bookIDs, genreID).Error(0)
}

func (m *MockBookRepo) RemoveGenreRef(ctx context.Context, bookIDs []primitive.ObjectID, genreID primitive.ObjectID) error {
	return m.Called(ctx, bookIDs, genreID).Error(0)
}

func (m *MockBookRepo) RemoveGenreRefAll(ctx context.Context, genreID primitive.ObjectID) error {
	return m.Called(ctx, genreID).Error(0)
}

func (m *MockBookRepo) AddGenres(ctx context.Context, bookID primitive.ObjectID, genreIDs []primitive.ObjectID) error {
	return m.Called(ctx, bookID, genreIDs).Error(0)
}

func (m *MockBookRepo) PushChapter(ctx context.Context, bookID primitive.ObjectID, ch models.Chapter) error {
	return m.Called(ctx, bookID, ch).Error(0)
}

func (m *MockBookRepo) SetChapterTitle(ctx context.Context, bookID primitive.ObjectID, chapterNo int, title string) error {
	return m.Called(ctx, bookID, chapterNo, title).Error(0)
}

func (m *MockBookRepo) PullChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) error {
	return m.Called(ctx, bookID, chapterNo).Error(0)
}

func (m *MockBookRepo) ApplyRating(ctx context.Context, bookID, reviewID primitive.ObjectID, average float64) error {
	return m.Called(ctx, bookID, reviewID, average).Error(0)
}

type MockAuthorRepo struct {
	mock.Mock
}

func (m *MockAuthorRepo) Insert(ctx context.Context, author *models.Author) (primitive.ObjectID, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAuthorRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepo) ByName(ctx context.Context, name string) (*models.Author, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepo) All(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Author), args.Error(1)
}

func (m *MockAuthorRepo) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockAuthorRepo) Update(ctx context.Context, author *models.Author) error {
	return m.Called(ctx, author).Error(0)
}

func (m *MockAuthorRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAuthorRepo) AddBookRef(ctx context.Context, authorIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	return m.Called(ctx, authorIDs, bookID).Error(0)
}

func (m *MockAuthorRepo) RemoveBookRef(ctx context.Context, authorIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	return m.Called(ctx, authorIDs, bookID).Error(0)
}

func (m *MockAuthorRepo) AddBooksWritten(ctx context.Context, authorID primitive.ObjectID, bookIDs []primitive.ObjectID) error {
	return m.Called(ctx, authorID, bookIDs).Error(0)
}

type MockGenreRepo struct {
	mock.Mock
}

func (m *MockGenreRepo) Insert(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error) {
	args := m.Called(ctx, genre)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockGenreRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepo) ByName(ctx context.Context, name string) (*models.Genre, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepo) All(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepo) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockGenreRepo) Update(ctx context.Context, genre *models.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockGenreRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGenreRepo) AddBookRef(ctx context.Context, genreIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	return m.Called(ctx, genreIDs, bookID).Error(0)
}

func (m *MockGenreRepo) RemoveBookRef(ctx context.Context, genreIDs []primitive.ObjectID, bookID primitive.ObjectID) error {
	return m.Called(ctx, genreIDs, bookID).Error(0)
}

func (m *MockGenreRepo) AddBooks(ctx context.Context, genreID primitive.ObjectID, bookIDs []primitive.ObjectID) error {
	return m.Called(ctx, genreID, bookIDs).Error(0)
}

type MockContentRepo struct {
	mock.Mock
}

func (m *MockContentRepo) Insert(ctx context.Context, content *models.BookContent) (primitive.ObjectID, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockContentRepo) ByBookAndChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) (*models.BookContent, error) {
	args := m.Called(ctx, bookID, chapterNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookContent), args.Error(1)
}

func (m *MockContentRepo) Update(ctx context.Context, id primitive.ObjectID, title, content string) error {
	return m.Called(ctx, id, title, content).Error(0)
}

func (m *MockContentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContentRepo) DeleteByBook(ctx context.Context, bookID primitive.ObjectID) error {
	return m.Called(ctx, bookID).Error(0)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Insert(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockReviewRepo) ByUserAndBook(ctx context.Context, userID, bookID primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepo) ByBook(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

type MockCollectionRepo struct {
	mock.Mock
}

func (m *MockCollectionRepo) Insert(ctx context.Context, collection *models.Collection) (primitive.ObjectID, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockCollectionRepo) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Collection, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionRepo) ByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Collection, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCollectionRepo) AddBook(ctx context.Context, id, userID, bookID primitive.ObjectID) error {
	return m.Called(ctx, id, userID, bookID).Error(0)
}

func (m *MockCollectionRepo) RemoveBook(ctx context.Context, id, userID, bookID primitive.ObjectID) error {
	return m.Called(ctx, id, userID, bookID).Error(0)
}

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Insert(ctx context.Context, sub *models.Subscription) (primitive.ObjectID, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSubscriptionRepo) ByUser(ctx context.Context, userID primitive.ObjectID) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepo) Deactivate(ctx context.Context, userID primitive.ObjectID, at time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) Insert(ctx context.Context, plan *models.SubscriptionPlan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPlanRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepo) ByType(ctx context.Context, planType string) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, planType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepo) All(ctx context.Context) ([]models.SubscriptionPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, plan *models.SubscriptionPlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Insert(ctx context.Context, payment *models.PaymentHistory) (primitive.ObjectID, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) ByUserAndBook(ctx context.Context, userID, bookID primitive.ObjectID) (*models.ReadingProgress, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingProgress), args.Error(1)
}

func (m *MockProgressRepo) Upsert(ctx context.Context, userID, bookID primitive.ObjectID, chapterNo int, at time.Time) error {
	return m.Called(ctx, userID, bookID, chapterNo, at).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockBlacklistRepo struct {
	mock.Mock
}

func (m *MockBlacklistRepo) Insert(ctx context.Context, token string, at time.Time) error {
	return m.Called(ctx, token, at).Error(0)
}

func (m *MockBlacklistRepo) Exists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
