package middleware

import (
	"context"
	"net/http"

	"vibe-frontend/internal/session"
	"vibe-frontend/pkg/utils"
)

type contextKey string

const TokenKey contextKey = "token"
const ClaimsKey contextKey = "claims"

type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession validates that the request carries a session cookie and puts
// the bearer token plus its decoded claims on the context. Token validity is
// ultimately decided by the backend on every proxied call; a cookie that does
// not even decode is rejected here.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.sessions.Token(r)
		if token == "" {
			utils.Detail(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := session.ParseClaims(token)
		if err != nil {
			utils.Detail(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		ctx := context.WithValue(r.Context(), TokenKey, token)
		ctx = context.WithValue(ctx, ClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext extracts the bearer token from the request context.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// ClaimsFromContext extracts the session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*session.Claims)
	return claims, ok
}
