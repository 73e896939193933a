// Package tasks stores tasks together with their label associations.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
)

type Repository interface {
	// List runs a composed filter query and eagerly loads labels and
	// subtasks for every task returned.
	List(ctx context.Context, q taskquery.Query) ([]models.Task, error)

	// Get returns the task with labels and subtasks, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Task, error)

	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// Update writes the mutable fields of task where id and owner match and
	// reports the number of rows changed.
	Update(ctx context.Context, task *models.Task) (int64, error)

	// SetStatus overwrites only the status column.
	SetStatus(ctx context.Context, id string, status models.Status) error

	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes the task; subtasks and label links cascade.
	Delete(ctx context.Context, id string) (int64, error)

	HasLabel(ctx context.Context, taskID, labelID string) (bool, error)

	// AddLabel links a label; an existing link yields
	// common.ErrLabelAlreadyAttached.
	AddLabel(ctx context.Context, taskID, labelID string) error

	RemoveLabel(ctx context.Context, taskID, labelID string) (int64, error)
}
