package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status of a task. Stored as its ordinal, rendered as its name.
type Status int

const (
	StatusIncomplete Status = iota
	StatusInProgress
	StatusCompleted
)

var statusNames = []string{"Incomplete", "InProgress", "Completed"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := parseEnum(string(b), statusNames)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	*s = Status(v)
	return nil
}

// UnmarshalJSON accepts the name or the ordinal.
func (s *Status) UnmarshalJSON(b []byte) error {
	return unmarshalEnumJSON(b, s.UnmarshalText)
}

func (s Status) Value() (driver.Value, error) { return int64(s), nil }

func (s *Status) Scan(src any) error {
	v, err := scanOrdinal(src)
	if err != nil {
		return err
	}
	*s = Status(v)
	return nil
}

// Priority of a task; optional on the task itself.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = []string{"Low", "Medium", "High"}

func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}
	return priorityNames[p]
}

func (p Priority) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(priorityNames) {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(priorityNames[p]), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := parseEnum(string(b), priorityNames)
	if err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	*p = Priority(v)
	return nil
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	return unmarshalEnumJSON(b, p.UnmarshalText)
}

func parseEnum(s string, names []string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(s, n) {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(names) {
		return i, nil
	}
	return 0, fmt.Errorf("unknown value %q", s)
}

func unmarshalEnumJSON(b []byte, text func([]byte) error) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return text([]byte(s))
	}
	return text(b)
}

func scanOrdinal(src any) (int, error) {
	switch v := src.(type) {
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case []byte:
		return strconv.Atoi(string(v))
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("cannot scan %T into enum", src)
	}
}
