package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boogo/backend/models"
	"github.com/boogo/backend/service"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockBlacklistRepo struct {
	mock.Mock
}

func (m *mockBlacklistRepo) Insert(ctx context.Context, token string, at time.Time) error {
	return m.Called(ctx, token, at).Error(0)
}

func (m *mockBlacklistRepo) Exists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func newAuthHandler(users *mockUserRepo, blacklist *mockBlacklistRepo) *AuthHandler {
	return &AuthHandler{
		Auth:     &service.AuthService{Users: users, Blacklist: blacklist, JWTSecret: "test-secret"},
		Validate: validator.New(),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegisterHandler_Success(t *testing.T) {
	users := new(mockUserRepo)
	h := newAuthHandler(users, new(mockBlacklistRepo))

	userID := primitive.NewObjectID()
	users.On("ByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Insert", mock.Anything, mock.AnythingOfType("*models.User")).Return(userID, nil)

	rr := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "s3cret",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Registration successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)
	assert.Empty(t, resp.User.Password)
	users.AssertExpectations(t)
}

func TestRegisterHandler_MissingEmail(t *testing.T) {
	h := newAuthHandler(new(mockUserRepo), new(mockBlacklistRepo))

	rr := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"name":     "Jane",
		"password": "s3cret",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "Email")
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	h := newAuthHandler(users, new(mockBlacklistRepo))

	users.On("ByEmail", mock.Anything, "jane@example.com").Return(&models.User{ID: primitive.NewObjectID()}, nil)

	rr := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "s3cret",
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Email is already registered", body["message"])
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	users := new(mockUserRepo)
	h := newAuthHandler(users, new(mockBlacklistRepo))

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("ByEmail", mock.Anything, "jane@example.com").Return(&models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: string(hash),
	}, nil)

	rr := postJSON(t, h.Login, "/api/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutHandler_BlacklistsToken(t *testing.T) {
	blacklist := new(mockBlacklistRepo)
	h := newAuthHandler(new(mockUserRepo), blacklist)

	blacklist.On("Insert", mock.Anything, "the-token", mock.AnythingOfType("time.Time")).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer the-token")
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	blacklist.AssertExpectations(t)
}
