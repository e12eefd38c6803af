package task

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("task not found")
	ErrMalformedStore = errors.New("malformed task store")
)

// ValidationError reports input that violates a field constraint.
type ValidationError struct {
	Field string // Field name (title, status, priority)
	Value string // Rejected input
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a task id that is not in the collection.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MalformedStoreError reports store content that exists but cannot be read
// as a task collection.
type MalformedStoreError struct {
	Location string // Store location
	Path     string // Path to the offending element, e.g. "[2].status"
	Err      error  // Underlying error
}

func (e *MalformedStoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed task store %s: %s: %v", e.Location, e.Path, e.Err)
	}
	return fmt.Sprintf("malformed task store %s: %v", e.Location, e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedStoreError) Unwrap() error {
	return e.Err
}

// Is matches ErrMalformedStore.
func (e *MalformedStoreError) Is(target error) bool {
	return target == ErrMalformedStore
}

var errTitleRequired = errors.New("title required")
