package service

import (
	"context"
	"errors"
	"time"

	"github.com/boogo/backend/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of issued auth tokens.
const TokenTTL = 4 * time.Hour

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies auth tokens and tracks revoked ones.
// Revoked tokens live in the blacklist until its TTL clears them, well
// after the tokens themselves have expired.
type AuthService struct {
	Users     UserRepository
	Blacklist BlacklistRepository
	JWTSecret string
}

type RegisterInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=1"`
	ProfilePicture string `json:"profile_picture"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	existing, err := s.Users.ByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, "", Conflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", Internal("failed to hash password", err)
	}
	picture := in.ProfilePicture
	if picture == "" {
		picture = models.DefaultProfilePicture
	}
	user := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		Password:       string(hash),
		ProfilePicture: picture,
		Role:           models.RoleUser,
		CreatedAt:      time.Now(),
	}
	id, err := s.Users.Insert(ctx, user)
	if err != nil {
		if isDup(err) {
			return nil, "", Conflict("Email is already registered")
		}
		return nil, "", Internal("failed to create user", err)
	}
	user.ID = id

	token, err := s.CreateToken(user.ID)
	if err != nil {
		return nil, "", Internal("failed to create token", err)
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.Users.ByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", Internal("login failed", err)
	}
	if user == nil {
		return nil, "", Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", Unauthorized("Invalid credentials")
	}
	token, err := s.CreateToken(user.ID)
	if err != nil {
		return nil, "", Internal("failed to create token", err)
	}
	return user, token, nil
}

func (s *AuthService) UserInfo(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.Users.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load user", err)
	}
	if user == nil {
		return nil, NotFound("User not found")
	}
	return user, nil
}

// Logout revokes the token. Revoking an already-revoked token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.Blacklist.Insert(ctx, token, time.Now()); err != nil {
		return Internal("Error logging out", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user. The blacklist is
// consulted before signature verification, so a revoked token is
// refused even when it would otherwise still be valid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	revoked, err := s.Blacklist.Exists(ctx, token)
	if err != nil {
		return nil, Internal("failed to check token", err)
	}
	if revoked {
		return nil, Forbidden("Token has been blacklisted")
	}

	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, Unauthorized("Invalid token")
	}
	return s.UserInfo(ctx, id)
}

func (s *AuthService) CreateToken(userID primitive.ObjectID) (string, error) {
	claims := &Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.JWTSecret))
}

// VerifyToken checks the signature and expiry only; callers wanting the
// blacklist consulted should use Authenticate.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, Unauthorized("Token expired")
		}
		return nil, Unauthorized("Invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, Unauthorized("Invalid token")
	}
	return claims, nil
}
