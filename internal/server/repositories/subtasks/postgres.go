package subtasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

const selectSubtask = `SELECT id, task_id, user_id, title, description, completed FROM subtasks`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Subtask) (*models.Subtask, error) {
	query :=
		`INSERT INTO subtasks (task_id, user_id, title, description, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, s.TaskID, s.UserID, s.Title, nullString(s.Description), s.Completed).
		Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Subtask, error) {
	s, err := scanSubtask(r.db.QueryRowContext(ctx, selectSubtask+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.Subtask, error) {
	return r.list(ctx, selectSubtask+` WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PostgresRepository) ListByTask(ctx context.Context, taskID string) ([]models.Subtask, error) {
	return r.list(ctx, selectSubtask+` WHERE task_id = $1 ORDER BY id`, taskID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]models.Subtask, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Subtask{}
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Subtask) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subtasks SET title = $2, description = $3, completed = $4 WHERE id = $1`,
		s.ID, s.Title, nullString(s.Description), s.Completed)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rowsAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubtask(sc scanner) (*models.Subtask, error) {
	var (
		s    models.Subtask
		desc sql.NullString
	)
	if err := sc.Scan(&s.ID, &s.TaskID, &s.UserID, &s.Title, &desc, &s.Completed); err != nil {
		return nil, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	return &s, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
