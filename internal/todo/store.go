package todo

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Filter selects a view over the store's tasks.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps user input to a Filter. The empty string and "all" both
// select the unfiltered view.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(FilterPending):
		return FilterPending, nil
	case string(FilterCompleted):
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid filter %q (expected pending or completed)", s)
	}
}

// Matches reports whether the task belongs to the filtered view.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt stamps. Tests use
// this for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the task collection and the identifier counter. It is built
// explicitly and threaded through callers; there is no package-level
// instance. A single mutex serializes all operations, so a Store is safe to
// share even though the CLI drives it from one goroutine.
//
// The Store performs no I/O and keeps no history: a deleted task is gone,
// and only its id survives as a permanent gap in the sequence.
type Store struct {
	mu    sync.Mutex
	gen   IDGenerator
	now   func() time.Time
	tasks map[string]*Task
	order []string // canonical ids in insertion order
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		tasks: make(map[string]*Task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the title and description, assigns the next id, and
// inserts a new pending task. Validation failures leave the id counter
// untouched. Returns a snapshot of the stored task.
func (s *Store) Create(title, description string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := ValidateTitle(title)
	if err != nil {
		return Task{}, err
	}
	description, err = ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}

	t := &Task{
		ID:          s.gen.Next(),
		Title:       title,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return *t, nil
}

// Get returns the task with the given id. Lookup is case-insensitive.
func (s *Store) Get(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.find(id)
	if err != nil {
		return Task{}, err
	}
	return *t, nil
}

// List returns snapshots of the tasks matching f, in insertion order. The
// result is never nil, so an empty view marshals to a JSON array.
func (s *Store) List(f Filter) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		if t := s.tasks[id]; f.Matches(*t) {
			out = append(out, *t)
		}
	}
	return out
}

// Update rewrites the provided fields and returns the updated snapshot. A
// nil pointer leaves the field alone; a pointer to an empty string is an
// explicit value. Both fields are validated before either is written, so a
// failed update changes nothing.
func (s *Store) Update(id string, title, description *string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == nil && description == nil {
		return Task{}, ErrNoChanges
	}
	t, err := s.find(id)
	if err != nil {
		return Task{}, err
	}

	newTitle := t.Title
	if title != nil {
		if newTitle, err = ValidateTitle(*title); err != nil {
			return Task{}, err
		}
	}
	newDescription := t.Description
	if description != nil {
		if newDescription, err = ValidateDescription(*description); err != nil {
			return Task{}, err
		}
	}

	t.Title = newTitle
	t.Description = newDescription
	return *t, nil
}

// Delete removes the task permanently and returns its final snapshot. The
// id is never reassigned.
func (s *Store) Delete(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.find(id)
	if err != nil {
		return Task{}, err
	}
	snapshot := *t
	delete(s.tasks, t.ID)
	for i, oid := range s.order {
		if oid == t.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return snapshot, nil
}

// SetCompleted sets the completion state of a task. The changed flag
// distinguishes a real transition from an idempotent no-op; both succeed.
func (s *Store) SetCompleted(id string, value bool) (Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.find(id)
	if err != nil {
		return Task{}, false, err
	}
	if t.Completed == value {
		return *t, false, nil
	}
	t.Completed = value
	return *t, true, nil
}

// Progress returns the completed and total task counts.
func (s *Store) Progress() (completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(s.tasks)
}

// find resolves a raw id to the stored task. Callers must hold mu.
func (s *Store) find(raw string) (*Task, error) {
	id, err := NormalizeID(raw)
	if err != nil {
		return nil, err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return t, nil
}
