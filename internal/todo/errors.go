package todo

import (
	"errors"
	"fmt"
)

// Validation and lookup failures are a closed set with fixed messages. The
// CLI prints them behind an "Error: " prefix, so each message here is the
// exact sentence the user sees.
var (
	ErrEmptyTitle         = errors.New("Task title cannot be empty")
	ErrTitleTooLong       = errors.New("Title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("Description cannot exceed 1000 characters")
	ErrInvalidID          = errors.New("Invalid task ID format. Expected format: T###")
	ErrNoChanges          = errors.New("No changes specified. Use --title or --description")
)

// NotFoundError reports a well-formed id with no matching task. The id is
// the canonical uppercase form.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task %s not found", e.ID)
}
