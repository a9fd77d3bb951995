package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the record is absent or owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique key (username, category or template name) is taken.
	ErrConflict = errors.New("already exists")
	// ErrValidation means a required field is empty or a value is out of range.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyPatch means a partial update carried no fields.
	ErrEmptyPatch = errors.New("nothing to update")
)

var validate = validator.New()

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
