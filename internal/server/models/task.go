package models

import "time"

// Task is owned by exactly one user. A nil ListID means the task is
// unsorted.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      Status     `json:"status"`
	Priority    *Priority  `json:"priority,omitempty"`
	UserID      string     `json:"userId"`
	ListID      *string    `json:"listId,omitempty"`
	ProjectID   *string    `json:"projectId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Labels      []Label    `json:"labels"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// Subtask belongs to a task and is deleted with it.
type Subtask struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"taskId"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
}

type Label struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Color  *string `json:"color,omitempty"`
}

type List struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
}

// StatusFromSubtasks is the status a parent takes after one of its
// subtasks changes: Completed when every subtask is, Incomplete otherwise.
func StatusFromSubtasks(subtasks []Subtask) Status {
	if len(subtasks) == 0 {
		return StatusIncomplete
	}
	for _, s := range subtasks {
		if !s.Completed {
			return StatusIncomplete
		}
	}
	return StatusCompleted
}
