package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"TaskManagerService/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user id stored on the request context by
// Middleware, or "" when the request did not pass through it.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user id. Exported for tests
// that exercise handlers without the middleware.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Middleware rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the resolved user id on the request context before any
// handler logic runs.
func (tm *TokenManager) Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				log.WithFields(logrus.Fields{
					"operation": "authorizing user",
					"request":   r.Method + " " + r.URL.Path,
				}).Error("missing authorization header")
				response.Error(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				response.Error(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}
			userID, err := tm.VerifyToken(tokenString)
			if err != nil {
				log.WithFields(logrus.Fields{
					"operation": "authorizing user",
					"request":   r.Method + " " + r.URL.Path,
				}).Error("invalid token: ", err)
				response.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
