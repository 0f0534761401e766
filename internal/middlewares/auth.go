package middlewares

import (
	"context"
	"net/http"

	"github.com/warbler-app/warbler/internal/logger"
)

// SessionTokener defines the minimal token operations needed by the middleware.
type SessionTokener interface {
	FromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (userID int64, sessionID string, err error)
}

// SessionChecker reports the user bound to a live session.
type SessionChecker interface {
	Get(ctx context.Context, sessionID string) (int64, error)
}

// AuthMiddleware returns a middleware that authenticates requests via the
// session cookie. The token must parse and its session must still exist in
// the session store; the session identity must match the token's user.
// On success the user id is placed in the request context.
func AuthMiddleware(tokener SessionTokener, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.FromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			userID, sessionID, err := tokener.Parse(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			sessionUserID, err := sessions.Get(ctx, sessionID)
			if err != nil || sessionUserID != userID {
				logger.Log.Errorw("session not found or mismatched", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = SetUserIDToContext(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type userIDContextKey struct{}

var userIDKey = userIDContextKey{}

// SetUserIDToContext stores the authenticated user id in the context.
func SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user id from the context.
// Returns 0 if not present.
func GetUserIDFromContext(ctx context.Context) int64 {
	userID, _ := ctx.Value(userIDKey).(int64)
	return userID
}
