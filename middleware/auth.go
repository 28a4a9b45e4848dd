package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/boogo/backend/models"
	"github.com/boogo/backend/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	RoleKey   contextKey = "role"
)

// Auth resolves the bearer token to a user and stashes the user's id
// and role in the request context. Revoked tokens are refused before
// signature verification.
func Auth(auth *service.AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, service.Forbidden("Token is required"))
				return
			}
			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, RoleKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin gates a route to admin users. Must run after Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := RoleFromContext(r.Context())
		if role != models.RoleAdmin {
			writeError(w, service.Forbidden("Admin role is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SubscriptionRequired gates a route to users holding a subscription
// that grants access right now. Must run after Auth.
func SubscriptionRequired(subs *service.SubscriptionService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, service.Forbidden("Token is required"))
				return
			}
			active, err := subs.HasActiveSubscription(r.Context(), userID)
			if err != nil {
				writeError(w, err)
				return
			}
			if !active {
				writeError(w, service.Forbidden("You must have an active subscription to access this resource"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PreventDuplicateSubscription refuses the subscribe route for users
// who already hold an active subscription. Must run after Auth.
func PreventDuplicateSubscription(subs *service.SubscriptionService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, service.Forbidden("Token is required"))
				return
			}
			active, err := subs.HasActiveSubscription(r.Context(), userID)
			if err != nil {
				writeError(w, err)
				return
			}
			if active {
				writeError(w, service.Forbidden("You already have an active subscription"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLoggedOut refuses register and login for callers presenting a
// token that still verifies. Requests without a usable token pass.
func RequireLoggedOut(auth *service.AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token != "" {
				if _, err := auth.Authenticate(r.Context(), token); err == nil {
					writeError(w, service.Forbidden("Already logged in"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from the Authorization header; a bare
// token without the Bearer prefix is accepted too.
func BearerToken(r *http.Request) string {
	return bearerToken(r)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return auth
}

func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(UserIDKey).(primitive.ObjectID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
