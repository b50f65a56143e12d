package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/logger"
)

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserBySub(ctx context.Context, authSub string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	store userStore
}

func NewUserService(store userStore) *userService {
	return &userService{store: store}
}

// Register provisions a local user for an authenticated subject. Calling it
// again for the same subject returns the existing user unchanged.
func (s *userService) Register(ctx context.Context, authSub, email string) (*models.User, error) {
	if strings.TrimSpace(authSub) == "" {
		return nil, errs.NewValidationError("auth subject cannot be empty")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errs.NewValidationError("email cannot be empty")
	}

	existing, err := s.store.GetUserBySub(ctx, authSub)
	if err != nil {
		return nil, errs.NewDatabaseError("look up user by subject", err)
	}
	if existing != nil {
		return existing, nil
	}

	user := &models.User{
		UserID:   uuid.NewString(),
		AuthSub:  authSub,
		Email:    email,
		IsActive: true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, errs.NewDatabaseError("create user", err)
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.UserID)

	created, err := s.store.GetUserBySub(ctx, authSub)
	if err != nil {
		return nil, errs.NewDatabaseError("load created user", err)
	}
	return created, nil
}

// Resolve maps an authenticated subject to the persisted user, which request
// handlers use to scope every query.
func (s *userService) Resolve(ctx context.Context, authSub string) (*models.User, error) {
	user, err := s.store.GetUserBySub(ctx, authSub)
	if err != nil {
		return nil, errs.NewDatabaseError("look up user by subject", err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError("no user registered for this identity")
	}
	if !user.IsActive {
		return nil, errs.NewValidationError("user account is deactivated")
	}
	return user, nil
}
