package lists

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	ListByOwner(ctx context.Context, userID string) ([]models.List, error)
	// Owned reports whether list id exists and belongs to userID.
	Owned(ctx context.Context, userID, id string) (bool, error)
}
