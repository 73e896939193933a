package subtasks

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Subtask) (*models.Subtask, error)
	// Get yields common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.Subtask, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Subtask, error)
	ListByTask(ctx context.Context, taskID string) ([]models.Subtask, error)
	// Update writes title, description and completed and reports the
	// number of rows changed.
	Update(ctx context.Context, s *models.Subtask) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
