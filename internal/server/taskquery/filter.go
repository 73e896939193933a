// Package taskquery turns the optional task-list filters into one
// parameterized SQL query.
package taskquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/google/uuid"
)

// DueDateLayout is the dd-MM-yyyy format accepted by the dueDate filter.
const DueDateLayout = "02-01-2006"

// Filter holds every supported task filter. Empty ids and false flags are
// not applied. OwnerID scopes the result to one user.
type Filter struct {
	OwnerID   string
	ListID    string
	ProjectID string
	LabelID   string
	DueDate   string

	Unsorted   bool
	Upcoming   bool
	Overdue    bool
	Incomplete bool
	Pending    bool
	Completed  bool
}

// ParseQuery reads a Filter from request query parameters. Ids must be
// UUIDs and flags must parse as booleans; dueDate is checked by Build.
func ParseQuery(q url.Values) (Filter, error) {
	var f Filter

	ids := []struct {
		key string
		dst *string
	}{
		{"listId", &f.ListID},
		{"projectId", &f.ProjectID},
		{"labelId", &f.LabelID},
	}
	for _, id := range ids {
		v := strings.TrimSpace(q.Get(id.key))
		if v == "" {
			continue
		}
		parsed, err := uuid.Parse(v)
		if err != nil {
			return Filter{}, common.NewValidationError(id.key, "must be a UUID")
		}
		*id.dst = parsed.String()
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"unsorted", &f.Unsorted},
		{"upcoming", &f.Upcoming},
		{"overdue", &f.Overdue},
		{"incomplete", &f.Incomplete},
		{"pending", &f.Pending},
		{"completed", &f.Completed},
	}
	for _, flag := range flags {
		v := strings.TrimSpace(q.Get(flag.key))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, common.NewValidationError(flag.key, "must be true or false")
		}
		*flag.dst = b
	}

	f.DueDate = strings.TrimSpace(q.Get("dueDate"))
	return f, nil
}
