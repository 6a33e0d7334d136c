package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "convomanage/internal/delivery/http/helpers"
	"convomanage/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	tokenKey  contextKey = "token"
)

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// SetToken returns a context carrying the raw bearer token.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the raw bearer token from the context, if present.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// user ID and raw token in the request context. Revoked tokens are rejected.
// revoker may be nil, in which case revocation is not checked.
func RequireAuth(verifier domain.TokenVerifier, revoker domain.TokenRevoker, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if revoker != nil {
				revoked, err := revoker.IsRevoked(r.Context(), token)
				if err != nil {
					// Revocation store outage must not lock everyone out.
					logger.Warn("revocation check failed", "error", err)
				} else if revoked {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "token revoked")
					return
				}
			}
			ctx := SetToken(SetUserID(r.Context(), userID), token)
			next(w, r.WithContext(ctx))
		}
	}
}
