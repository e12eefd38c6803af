package task

import (
	"fmt"
	"strings"
)

// Status represents a task's workflow stage.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Priority represents a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Defaults applied to every new task.
const (
	DefaultStatus   = StatusToDo
	DefaultPriority = PriorityMedium
)

// Task is a single unit of work. Field order here is the order used when a
// task is serialized.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

// Statuses returns the valid status values in workflow order.
func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusDone}
}

// Priorities returns the valid priority values from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParseStatus returns the Status matching s exactly.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", &ValidationError{
		Field: "status",
		Value: s,
		Err:   fmt.Errorf("invalid status %q, must be one of: %s", s, joinQuoted(Statuses())),
	}
}

// ParsePriority upper-cases s and returns the matching Priority.
func ParsePriority(s string) (Priority, error) {
	upper := strings.ToUpper(s)
	for _, p := range Priorities() {
		if string(p) == upper {
			return p, nil
		}
	}
	return "", &ValidationError{
		Field: "priority",
		Value: s,
		Err:   fmt.Errorf("invalid priority %q, must be one of: %s", s, joinQuoted(Priorities())),
	}
}

func joinQuoted[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", string(v))
	}
	return strings.Join(quoted, ", ")
}

// Filter narrows List results. Empty fields are not applied.
type Filter struct {
	Status   string
	Priority string
}

// UpdateFields holds the fields an Update may change. A nil field is left
// as it is; a non-nil empty Description clears the description.
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// IsZero reports whether no field was supplied.
func (u UpdateFields) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil
}

// Store reads and writes a whole task collection at a location.
type Store interface {
	// Load returns the collection at location. A missing or blank store
	// yields an empty collection; unparseable content yields a
	// *MalformedStoreError.
	Load(location string) ([]Task, error)
	// Save replaces the content at location with tasks.
	Save(location string, tasks []Task) error
}
