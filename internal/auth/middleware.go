package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ncastellanos/casita/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// TokenValidator resolves a bearer token to the identity it belongs to.
// *Client satisfies it; tests substitute fakes.
type TokenValidator interface {
	UserFromToken(token string) (*models.User, error)
}

// BearerToken extracts the token from an Authorization header, or "".
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Middleware validates the request's bearer token against GoTrue and
// injects the resolved user into the request context.
func Middleware(v TokenValidator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := v.UserFromToken(token)
		if err != nil {
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom returns the authenticated user injected by Middleware.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}
