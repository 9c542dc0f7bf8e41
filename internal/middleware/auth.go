package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pizzalab/pizza-service/internal/models"
	"github.com/pizzalab/pizza-service/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// ErrNoBearerToken means the Authorization header is missing or malformed
var ErrNoBearerToken = errors.New("authorization header format must be Bearer <token>")

// BearerToken extracts the bearer credential from the Authorization header
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoBearerToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrNoBearerToken
	}
	return parts[1], nil
}

// RequireAccess verifies the request's access token, resolves the acting
// user and stores it in the request context. Failing requests get a 401.
func RequireAccess(auth *service.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				unauthorized(w, err)
				return
			}

			user, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				unauthorized(w, service.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user resolved by RequireAccess
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
