package middleware

import (
	"context"
	"net/http"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type UserResolver interface {
	Resolve(ctx context.Context, authSub string) (*models.User, error)
}

const UserIDKey contextKey = "user_id"

type userMiddleware struct {
	Users UserResolver
}

func NewUserMiddleware(users UserResolver) *userMiddleware {
	return &userMiddleware{Users: users}
}

// RequireUser maps the verified token subject to a registered user and stores
// the user id in the context. Runs after BearerAuth; requests from subjects
// that never registered are rejected.
func (m *userMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub := Sub(r.Context())
		if sub == "" {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		user, err := m.Users.Resolve(r.Context(), sub)
		if err != nil {
			http.Error(w, "user not registered", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the resolved user id.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
