package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"family-planner/internal/auth"
	"family-planner/internal/model"
	"family-planner/internal/repository"
)

// ErrUnauthenticated is returned for an unknown user and a wrong password alike.
var ErrUnauthenticated = errors.New("invalid username or password")

// AccountService registers and authenticates users.
type AccountService struct {
	users *repository.UserRepository
	log   *zap.Logger
}

func NewAccountService(users *repository.UserRepository, log *zap.Logger) *AccountService {
	return &AccountService{users: users, log: log}
}

// Register creates the account with its default settings and categories.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", repository.ErrValidation)
	}

	user, err := s.users.Create(ctx, username, auth.HashPassword(password))
	if err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			s.log.Error("register user", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Authenticate returns the user id for a matching username and password.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (uint, error) {
	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.log.Warn("login failed", zap.String("username", username))
		return 0, ErrUnauthenticated
	case err != nil:
		return 0, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		s.log.Warn("login failed", zap.String("username", username))
		return 0, ErrUnauthenticated
	}
	return user.ID, nil
}

func (s *AccountService) List(ctx context.Context) ([]model.UserSummary, error) {
	return s.users.ListSummaries(ctx)
}
