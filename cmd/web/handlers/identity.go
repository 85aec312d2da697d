package handlers

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader carries the caller id set by the upstream authenticator.
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// Identity rejects requests without a caller id and stores it in the
// request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Unauthenticated."})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
