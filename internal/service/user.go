package service

import (
	"context"
	"log/slog"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/id"
	"github.com/medialog/medialog-server/internal/store"
	"github.com/medialog/medialog-server/internal/validation"
)

// UserService manages user accounts.
type UserService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st *store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:     st,
		validator: validation.New(),
		logger:    logger,
	}
}

// CreateUserInput is the payload for registering a user.
type CreateUserInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// CreateUser registers a new user. Emails are unique, compared
// case-insensitively.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generating user id")
	}

	user := &domain.User{
		Email:       input.Email,
		DisplayName: input.DisplayName,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return users, nil
}
