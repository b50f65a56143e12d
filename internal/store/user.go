package store

import (
	"context"
	"database/sql"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type userStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *userStore {
	return &userStore{db: db}
}

func (s *userStore) CreateUser(ctx context.Context, user *models.User) error {
	now := nowText()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, auth_sub, email, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.UserID, user.AuthSub, user.Email, boolInt(user.IsActive), now, now)
	return err
}

// GetUserBySub resolves the identity-provider subject to the persisted user.
// Returns nil when no user is registered for the subject.
func (s *userStore) GetUserBySub(ctx context.Context, authSub string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, auth_sub, email, is_active, created_at, updated_at
		FROM users WHERE auth_sub = ?`, authSub)

	return scanUser(row)
}

func (s *userStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, auth_sub, email, is_active, created_at, updated_at
		FROM users WHERE user_id = ?`, userID)

	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var isActive int
	var createdAt, updatedAt string

	err := row.Scan(&u.UserID, &u.AuthSub, &u.Email, &isActive, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.IsActive = isActive == 1
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}
