package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/subtasks"
)

type SubtaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSubtaskService(db *sql.DB, m repomanager.RepositoryManager) *SubtaskService {
	return &SubtaskService{db: db, repomanager: m}
}

// Create adds a subtask under the caller's task.
func (s *SubtaskService) Create(ctx context.Context, ownerID, taskID string, sub *models.Subtask) (*models.Subtask, error) {
	sub.Title = strings.TrimSpace(sub.Title)
	if sub.Title == "" {
		return nil, common.NewValidationError("title", "is required")
	}

	task, err := s.repomanager.Tasks(s.db).Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTaskNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if task.UserID != ownerID {
		return nil, common.ErrorUnauthorized
	}

	sub.ID = ""
	sub.TaskID = taskID
	sub.UserID = ownerID
	created, err := s.repomanager.Subtasks(s.db).Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

func (s *SubtaskService) Get(ctx context.Context, ownerID, id string) (*models.Subtask, error) {
	return s.owned(ctx, s.repomanager.Subtasks(s.db), ownerID, id)
}

func (s *SubtaskService) List(ctx context.Context, ownerID string) ([]models.Subtask, error) {
	list, err := s.repomanager.Subtasks(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}

// Update rewrites a subtask and recomputes the parent task's status in the
// same transaction: Completed when every sibling is completed, Incomplete
// otherwise. The parent is taken from the stored row, not from sub.
func (s *SubtaskService) Update(ctx context.Context, ownerID, id string, sub *models.Subtask) error {
	if sub.ID != id {
		return common.ErrIDMismatch
	}
	sub.Title = strings.TrimSpace(sub.Title)
	if sub.Title == "" {
		return common.NewValidationError("title", "is required")
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Subtasks(tx)

		current, err := s.owned(ctx, repo, ownerID, id)
		if err != nil {
			return err
		}
		sub.TaskID = current.TaskID
		sub.UserID = current.UserID

		n, err := repo.Update(ctx, sub)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		if n == 0 {
			return common.ErrSubtaskNotFound
		}

		siblings, err := repo.ListByTask(ctx, current.TaskID)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		status := models.StatusFromSubtasks(siblings)
		if err := s.repomanager.Tasks(tx).SetStatus(ctx, current.TaskID, status); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		return nil
	})
}

func (s *SubtaskService) Delete(ctx context.Context, ownerID, id string) error {
	repo := s.repomanager.Subtasks(s.db)

	if _, err := s.owned(ctx, repo, ownerID, id); err != nil {
		return err
	}
	n, err := repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if n == 0 {
		return common.ErrSubtaskNotFound
	}
	return nil
}

func (s *SubtaskService) owned(ctx context.Context, repo subtasks.Repository, ownerID, id string) (*models.Subtask, error) {
	sub, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if sub.UserID != ownerID {
		return nil, common.ErrSubtaskNotFound
	}
	return sub, nil
}
