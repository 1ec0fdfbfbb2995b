// Package users persists user accounts.
package users

import (
	"context"

	"github.com/dsemenov/dosetrack/internal/server/models"
)

type Repository interface {
	// Create stores a new user and returns it with the generated id.
	// Duplicate usernames return common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns the user with the given username or
	// common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
}
