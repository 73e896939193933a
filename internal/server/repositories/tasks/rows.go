package tasks

import (
	"database/sql"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type taskRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	ListID      sql.NullString `db:"list_id"`
	ProjectID   sql.NullString `db:"project_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	DueDate     sql.NullTime   `db:"due_date"`
	Status      models.Status  `db:"status"`
	Priority    sql.NullInt16  `db:"priority"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r taskRow) toModel() models.Task {
	t := models.Task{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		Labels:    []models.Label{},
		Subtasks:  []models.Subtask{},
	}
	if r.ListID.Valid {
		t.ListID = &r.ListID.String
	}
	if r.ProjectID.Valid {
		t.ProjectID = &r.ProjectID.String
	}
	if r.Description.Valid {
		t.Description = &r.Description.String
	}
	if r.DueDate.Valid {
		d := r.DueDate.Time
		t.DueDate = &d
	}
	if r.Priority.Valid {
		p := models.Priority(r.Priority.Int16)
		t.Priority = &p
	}
	return t
}

type labelRow struct {
	TaskID string         `db:"task_id"`
	ID     string         `db:"id"`
	UserID string         `db:"user_id"`
	Name   string         `db:"name"`
	Color  sql.NullString `db:"color"`
}

type subtaskRow struct {
	ID          string         `db:"id"`
	TaskID      string         `db:"task_id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   bool           `db:"completed"`
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullPriority(p *models.Priority) sql.NullInt16 {
	if p == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(*p), Valid: true}
}
