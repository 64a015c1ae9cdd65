package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"luxfur/internal/models"
)

// SessionName is the cookie session shared by the cart and authentication.
const SessionName = "session"

// UserSessionKey is the session slot holding the logged-in user's id.
const UserSessionKey = "user_id"

type contextKey string

const userContextKey contextKey = "user"

// UserLoader resolves a session user id to a full user.
type UserLoader interface {
	GetUser(id int) (*models.User, error)
}

// AuthMiddleware attaches the logged-in user, if any, to the request context.
type AuthMiddleware struct {
	store sessions.Store
	users UserLoader
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(store sessions.Store, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{store: store, users: users}
}

// LoadUser resolves the session's user id and stores the user in the request
// context. Requests without a valid session user pass through anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values[UserSessionKey].(int)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetUser(userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the request's user or nil.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
