package labels

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, label *models.Label) (*models.Label, error)
	// Get yields common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.Label, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Label, error)
}
