package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

type Middleware struct {
	JWKS *keyfunc.JWKS
}

func NewMiddleware(jwks *keyfunc.JWKS) *Middleware {
	return &Middleware{JWKS: jwks}
}

// context keys
type contextKey string

const (
	SubKey   contextKey = "sub"
	EmailKey contextKey = "email"
)

// BearerAuth verifies the Authorization bearer token against the JWKS and
// stores the token subject and email claim in the request context.
func (m *Middleware) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, m.JWKS.Keyfunc)
		if err != nil || !token.Valid {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			http.Error(w, "token has no subject", http.StatusUnauthorized)
			return
		}
		email, _ := claims["email"].(string)

		ctx := context.WithValue(r.Context(), SubKey, sub)
		ctx = context.WithValue(ctx, EmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Sub extracts the verified token subject.
func Sub(ctx context.Context) string {
	sub, _ := ctx.Value(SubKey).(string)
	return sub
}

// Email extracts the email claim, empty when the token carried none.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
