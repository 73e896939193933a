package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
	"github.com/jmoiron/sqlx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, q taskquery.Query) ([]models.Task, error) {
	return r.query(ctx, q.Rebind(sqlx.DOLLAR), q.Args...)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Task, error) {
	list, err := r.query(ctx, `SELECT `+taskquery.TaskColumns+` FROM tasks t WHERE t.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return &list[0], nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var found []taskRow
	if err := sqlx.StructScan(rows, &found); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	tasks := make([]models.Task, 0, len(found))
	ids := make([]string, 0, len(found))
	for _, row := range found {
		tasks = append(tasks, row.toModel())
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return tasks, nil
	}

	if err := r.loadRelations(ctx, tasks, ids); err != nil {
		return nil, err
	}
	return tasks, nil
}

// loadRelations fills Labels and Subtasks for tasks in two IN queries.
func (r *PostgresRepository) loadRelations(ctx context.Context, tasks []models.Task, ids []string) error {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}

	var labels []labelRow
	if err := r.selectIn(ctx, &labels,
		`SELECT tl.task_id, l.id, l.user_id, l.name, l.color
		 FROM task_labels tl JOIN labels l ON l.id = tl.label_id
		 WHERE tl.task_id IN (?)
		 ORDER BY l.name, l.id`, ids); err != nil {
		return err
	}
	for _, l := range labels {
		i := index[l.TaskID]
		label := models.Label{ID: l.ID, UserID: l.UserID, Name: l.Name}
		if l.Color.Valid {
			label.Color = &l.Color.String
		}
		tasks[i].Labels = append(tasks[i].Labels, label)
	}

	var subtasks []subtaskRow
	if err := r.selectIn(ctx, &subtasks,
		`SELECT id, task_id, user_id, title, description, completed
		 FROM subtasks
		 WHERE task_id IN (?)
		 ORDER BY id`, ids); err != nil {
		return err
	}
	for _, s := range subtasks {
		i := index[s.TaskID]
		sub := models.Subtask{ID: s.ID, TaskID: s.TaskID, UserID: s.UserID, Title: s.Title, Completed: s.Completed}
		if s.Description.Valid {
			sub.Description = &s.Description.String
		}
		tasks[i].Subtasks = append(tasks[i].Subtasks, sub)
	}
	return nil
}

func (r *PostgresRepository) selectIn(ctx context.Context, dest any, query string, ids []string) error {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return fmt.Errorf("expand query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	if err := sqlx.StructScan(rows, dest); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (user_id, list_id, project_id, title, description, due_date, status, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, nullString(task.ListID), nullString(task.ProjectID), task.Title,
		nullString(task.Description), nullTime(task.DueDate), task.Status, nullPriority(task.Priority),
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if task.Labels == nil {
		task.Labels = []models.Label{}
	}
	if task.Subtasks == nil {
		task.Subtasks = []models.Subtask{}
	}
	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (int64, error) {
	query :=
		`UPDATE tasks
		 SET list_id = $3, project_id = $4, title = $5, description = $6,
		     due_date = $7, status = $8, priority = $9
		 WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, nullString(task.ListID), nullString(task.ProjectID), task.Title,
		nullString(task.Description), nullTime(task.DueDate), task.Status, nullPriority(task.Priority))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res)
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.Status) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = $2 WHERE id = $1`, id, status); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res)
}

func (r *PostgresRepository) HasLabel(ctx context.Context, taskID, labelID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM task_labels WHERE task_id = $1 AND label_id = $2)`, taskID, labelID)
}

func (r *PostgresRepository) AddLabel(ctx context.Context, taskID, labelID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO task_labels (task_id, label_id) VALUES ($1, $2)`, taskID, labelID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrLabelAlreadyAttached
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveLabel(ctx context.Context, taskID, labelID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id = $1 AND label_id = $2`, taskID, labelID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
