// Package users declares the user repository and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type Repository interface {
	// Create inserts user and returns it with ID and CreatedAt set.
	// A duplicate email yields common.ErrEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail matches case-insensitively; absent users yield
	// common.ErrorNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	GetUserByID(ctx context.Context, id string) (*models.User, error)

	Count(ctx context.Context) (int64, error)
}
