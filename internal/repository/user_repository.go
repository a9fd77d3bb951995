package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"family-planner/internal/model"
)

// UserRepository handles accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user together with default settings and categories in
// one transaction. A taken username yields ErrConflict and leaves the
// existing account untouched.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	var user *model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = createAccount(tx, username, passwordHash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// ListSummaries returns every account ordered by username.
func (r *UserRepository) ListSummaries(ctx context.Context) ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("id, username").
		Order("username ASC").
		Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
