package todo

import (
	"encoding/json"
	"time"
)

// CreatedAtLayout is the timestamp layout used wherever a task timestamp is
// displayed or serialized: ISO 8601 without a timezone offset.
const CreatedAtLayout = "2006-01-02T15:04:05"

// Task is the single record type managed by the Store. ID and CreatedAt are
// assigned once at creation and have no mutator; Title, Description, and
// Completed change only through Store operations.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// Checkbox returns the list-line marker for the completion state.
func (t Task) Checkbox() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// StatusDisplay returns the human-readable completion state.
func (t Task) StatusDisplay() string {
	if t.Completed {
		return "Complete"
	}
	return "Pending"
}

// FormatCreatedAt renders the creation timestamp in CreatedAtLayout.
func (t Task) FormatCreatedAt() string {
	return t.CreatedAt.Format(CreatedAtLayout)
}

// MarshalJSON serializes the task with created_at in CreatedAtLayout instead
// of RFC 3339.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.FormatCreatedAt(),
	})
}

// taskJSON is the wire shape described by the bundled schema.
type taskJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}
