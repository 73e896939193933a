package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
)

// TaskService owns task CRUD, filtered listing and label association.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m, now: time.Now}
}

// WithClock replaces the reference clock for the upcoming and overdue filters.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// List returns tasks matching f with labels and subtasks attached.
func (s *TaskService) List(ctx context.Context, f taskquery.Filter) ([]models.Task, error) {
	q, err := taskquery.Build(f, s.now())
	if err != nil {
		return nil, err
	}
	list, err := s.repomanager.Tasks(s.db).List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}

// Get returns the caller's task. Tasks of other users are reported as
// missing.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	t, err := s.load(ctx, s.repomanager.Tasks(s.db), id)
	if err != nil {
		return nil, err
	}
	if t.UserID != ownerID {
		return nil, common.ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID string, t *models.Task) (*models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return nil, common.NewValidationError("title", "is required")
	}
	if err := s.checkList(ctx, ownerID, t.ListID); err != nil {
		return nil, err
	}
	t.ID = ""
	t.UserID = ownerID

	created, err := s.repomanager.Tasks(s.db).Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// Update overwrites the caller's task with t. A missing or foreign task
// yields common.ErrorUnauthorized; a task that disappears mid-update yields
// common.ErrTaskNotFound and any other lost update common.ErrConflict.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, t *models.Task) (*models.Task, error) {
	if t.ID != id {
		return nil, common.ErrIDMismatch
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return nil, common.NewValidationError("title", "is required")
	}

	repo := s.repomanager.Tasks(s.db)

	current, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if current.UserID != ownerID {
		return nil, common.ErrorUnauthorized
	}
	if err := s.checkList(ctx, ownerID, t.ListID); err != nil {
		return nil, err
	}

	t.UserID = ownerID
	n, err := repo.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if n == 0 {
		exists, err := repo.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		if !exists {
			return nil, common.ErrTaskNotFound
		}
		return nil, common.ErrConflict
	}

	return s.load(ctx, repo, id)
}

// checkList rejects a list id that is missing or owned by someone else.
func (s *TaskService) checkList(ctx context.Context, ownerID string, listID *string) error {
	if listID == nil {
		return nil
	}
	ok, err := s.repomanager.Lists(s.db).Owned(ctx, ownerID, *listID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return common.NewValidationError("listId", "does not refer to one of your lists")
	}
	return nil
}

// Delete removes the caller's task; its subtasks and label links go with it.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	repo := s.repomanager.Tasks(s.db)

	t, err := s.load(ctx, repo, id)
	if err != nil {
		return err
	}
	if t.UserID != ownerID {
		return common.ErrorUnauthorized
	}

	n, err := repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if n == 0 {
		return common.ErrTaskNotFound
	}
	return nil
}

// AddLabel links a label to a task. Either side missing (or owned by
// another user) yields common.ErrInvalidTaskOrLabel.
func (s *TaskService) AddLabel(ctx context.Context, ownerID, taskID, labelID string) error {
	repo := s.repomanager.Tasks(s.db)

	if err := s.checkTaskAndLabel(ctx, repo, ownerID, taskID, labelID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidTaskOrLabel
		}
		return err
	}

	attached, err := repo.HasLabel(ctx, taskID, labelID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if attached {
		return common.ErrLabelAlreadyAttached
	}

	if err := repo.AddLabel(ctx, taskID, labelID); err != nil {
		if errors.Is(err, common.ErrLabelAlreadyAttached) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return nil
}

// RemoveLabel unlinks a label. A missing task yields common.ErrTaskNotFound,
// a missing label common.ErrLabelNotFound and an absent link
// common.ErrLabelNotAttached.
func (s *TaskService) RemoveLabel(ctx context.Context, ownerID, taskID, labelID string) error {
	repo := s.repomanager.Tasks(s.db)

	if err := s.checkTaskAndLabel(ctx, repo, ownerID, taskID, labelID); err != nil {
		return err
	}

	n, err := repo.RemoveLabel(ctx, taskID, labelID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if n == 0 {
		return common.ErrLabelNotAttached
	}
	return nil
}

func (s *TaskService) checkTaskAndLabel(ctx context.Context, repo tasks.Repository, ownerID, taskID, labelID string) error {
	t, err := s.load(ctx, repo, taskID)
	if err != nil {
		return err
	}
	if t.UserID != ownerID {
		return common.ErrTaskNotFound
	}

	label, err := s.repomanager.Labels(s.db).Get(ctx, labelID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrLabelNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if label.UserID != ownerID {
		return common.ErrLabelNotFound
	}
	return nil
}

func (s *TaskService) load(ctx context.Context, repo tasks.Repository, id string) (*models.Task, error) {
	t, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTaskNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return t, nil
}
