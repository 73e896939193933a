package taskquery

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/jmoiron/sqlx"
)

// TaskColumns is the default select list, in models.Task field order.
const TaskColumns = "t.id, t.user_id, t.list_id, t.project_id, t.title, t.description, t.due_date, t.status, t.priority, t.created_at"

const (
	defaultOrder  = "t.created_at ASC, t.id ASC"
	upcomingOrder = "t.due_date ASC, t.created_at ASC, t.id ASC"
)

// Query is a composed task query. Conditions are AND-ed; Args line up with
// the ? placeholders in Conditions.
type Query struct {
	Columns    string
	Conditions []string
	Args       []any
	OrderBy    string
}

// ParseError reports a dueDate that is not dd-MM-yyyy. It matches
// common.ErrParse and common.ErrValidation.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dueDate %q is not %s: %v", e.Value, "dd-MM-yyyy", e.Err)
}

func (e *ParseError) Unwrap() error { return common.ErrParse }

// Build applies the filters in a fixed order: owner, listId, projectId,
// labelId, unsorted, upcoming, overdue, incomplete, pending, completed,
// dueDate. now is the reference instant for upcoming and overdue.
func Build(f Filter, now time.Time) (Query, error) {
	q := Query{Columns: TaskColumns, OrderBy: defaultOrder}
	now = now.UTC()

	if f.OwnerID != "" {
		q.where("t.user_id = ?", f.OwnerID)
	}
	if f.ListID != "" {
		q.where("t.list_id = ?", f.ListID)
	}
	if f.ProjectID != "" {
		q.where("t.project_id = ?", f.ProjectID)
	}
	if f.LabelID != "" {
		q.where("EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = ?)", f.LabelID)
	}
	if f.Unsorted {
		q.where("t.list_id IS NULL")
	}
	if f.Upcoming {
		q.where("t.due_date IS NOT NULL AND t.due_date > ? AND t.status = ?", now, int(models.StatusIncomplete))
		q.OrderBy = upcomingOrder
	}
	if f.Overdue {
		q.where("t.due_date IS NOT NULL AND t.due_date < ? AND t.status = ?", now, int(models.StatusIncomplete))
	}
	if f.Incomplete {
		q.where("t.status = ? AND NOT EXISTS (SELECT 1 FROM subtasks s WHERE s.task_id = t.id AND s.completed)", int(models.StatusIncomplete))
	}
	if f.Pending {
		q.where("t.status <> ? AND EXISTS (SELECT 1 FROM subtasks s WHERE s.task_id = t.id AND s.completed)", int(models.StatusCompleted))
	}
	if f.Completed {
		q.where("t.status = ?", int(models.StatusCompleted))
	}
	if f.DueDate != "" {
		day, err := time.ParseInLocation(DueDateLayout, f.DueDate, time.UTC)
		if err != nil {
			return Query{}, &ParseError{Value: f.DueDate, Err: err}
		}
		q.where("t.due_date >= ? AND t.due_date < ?", day, day.AddDate(0, 0, 1))
	}

	return q, nil
}

func (q *Query) where(cond string, args ...any) {
	q.Conditions = append(q.Conditions, cond)
	q.Args = append(q.Args, args...)
}

// SQL renders the query with ? placeholders.
func (q Query) SQL() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(q.Columns)
	b.WriteString(" FROM tasks t")
	if len(q.Conditions) > 0 {
		b.WriteString(" WHERE ")
		for i, c := range q.Conditions {
			if i > 0 {
				b.WriteString(" AND ")
			}
			b.WriteString("(")
			b.WriteString(c)
			b.WriteString(")")
		}
	}
	if q.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy)
	}
	return b.String()
}

// Rebind renders the query for a driver's placeholder style, e.g.
// sqlx.DOLLAR for Postgres.
func (q Query) Rebind(bindType int) string {
	return sqlx.Rebind(bindType, q.SQL())
}
