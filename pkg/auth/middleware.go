package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// SessionValidator resolves a session token to the owning user ID.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (string, error)
}

// UserIDFromContext returns the authenticated user ID stored in ctx.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}

// WithUserID stores userID in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequireAuth rejects requests without a valid session and stores the user ID
// of valid ones in the request context. Only ErrInvalidSession is a 401:
// clients discard their token on 401, so a failing session lookup must not
// look like a revoked session.
func RequireAuth(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "missing session token")
				return
			}

			userID, err := v.ValidateSession(r.Context(), token)
			switch {
			case errors.Is(err, ErrInvalidSession):
				writeAuthError(w, http.StatusUnauthorized, "invalid_session", "session is invalid or expired")
				return
			case err != nil:
				slog.Error("session lookup failed", "error", err, "method", r.Method, "path", r.URL.Path)
				writeAuthError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
