package todo

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

var testClock = func() time.Time {
	return time.Date(2025, 12, 29, 10, 30, 0, 0, time.UTC)
}

// newTestStore returns a store with a fixed clock and the given titles
// pre-created.
func newTestStore(t *testing.T, titles ...string) *Store {
	t.Helper()
	s := NewStore(WithClock(testClock))
	for _, title := range titles {
		if _, err := s.Create(title, ""); err != nil {
			t.Fatalf("seeding store with %q: %v", title, err)
		}
	}
	return s
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := NewStore(WithClock(testClock))

	first, err := s.Create("Buy groceries", "Milk, eggs, bread")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ID != "T001" {
		t.Errorf("first id: got %s, want T001", first.ID)
	}
	if first.Title != "Buy groceries" {
		t.Errorf("title: got %q, want %q", first.Title, "Buy groceries")
	}
	if first.Description != "Milk, eggs, bread" {
		t.Errorf("description: got %q, want %q", first.Description, "Milk, eggs, bread")
	}
	if first.Completed {
		t.Error("new task should be pending")
	}
	if !first.CreatedAt.Equal(testClock()) {
		t.Errorf("created_at: got %v, want %v", first.CreatedAt, testClock())
	}

	second, err := s.Create("Call mom", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.ID != "T002" {
		t.Errorf("second id: got %s, want T002", second.ID)
	}
}

func TestCreateTrimsTitle(t *testing.T) {
	s := newTestStore(t)

	task, err := s.Create("  Buy groceries  ", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Title != "Buy groceries" {
		t.Errorf("title: got %q, want trimmed %q", task.Title, "Buy groceries")
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantErr     error
	}{
		{name: "empty title", title: "", wantErr: ErrEmptyTitle},
		{name: "whitespace title", title: "   ", wantErr: ErrEmptyTitle},
		{name: "title too long", title: strings.Repeat("x", MaxTitleLen+1), wantErr: ErrTitleTooLong},
		{name: "description too long", title: "ok", description: strings.Repeat("x", MaxDescriptionLen+1), wantErr: ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if _, err := s.Create(tt.title, tt.description); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create: got err %v, want %v", err, tt.wantErr)
			}
			if got := s.List(FilterAll); len(got) != 0 {
				t.Errorf("store should stay empty after failed create, has %d tasks", len(got))
			}
		})
	}
}

func TestFailedCreateDoesNotAdvanceCounter(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Create("", ""); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("Create: got err %v, want ErrEmptyTitle", err)
	}
	task, err := s.Create("First valid task", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID != "T001" {
		t.Errorf("id after failed create: got %s, want T001", task.ID)
	}
}

func TestGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create("  Buy groceries ", "Milk, eggs, bread")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Buy groceries" {
		t.Errorf("title: got %q, want %q", got.Title, "Buy groceries")
	}
	if got.Description != "Milk, eggs, bread" {
		t.Errorf("description: got %q, want %q", got.Description, "Milk, eggs, bread")
	}
	if got.Completed {
		t.Error("completed: got true, want false")
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	upper, err := s.Get("T001")
	if err != nil {
		t.Fatalf("Get(T001) failed: %v", err)
	}
	lower, err := s.Get("t001")
	if err != nil {
		t.Fatalf("Get(t001) failed: %v", err)
	}
	if upper.ID != lower.ID || upper.Title != lower.Title {
		t.Errorf("case-insensitive lookup: got %+v and %+v, want same task", upper, lower)
	}
}

func TestGetErrors(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	if _, err := s.Get("banana"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("malformed id: got err %v, want ErrInvalidID", err)
	}

	_, err := s.Get("T999")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("missing id: got err %v, want NotFoundError", err)
	}
	if nf.ID != "T999" {
		t.Errorf("NotFoundError id: got %s, want T999", nf.ID)
	}
	if err.Error() != "Task T999 not found" {
		t.Errorf("NotFoundError message: got %q, want %q", err.Error(), "Task T999 not found")
	}

	// Lowercase input surfaces the canonical id in the error.
	_, err = s.Get("t999")
	if !errors.As(err, &nf) || nf.ID != "T999" {
		t.Errorf("lowercase missing id: got %v, want NotFoundError for T999", err)
	}

	// T1 is a well-formed id but not the same id as T001.
	if _, err := s.Get("T1"); !errors.As(err, &nf) {
		t.Errorf("unpadded id: got err %v, want NotFoundError", err)
	}
}

func TestGetDoesNotExposeStoredState(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	got, err := s.Get("T001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got.Title = "mutated"
	got.Completed = true

	again, err := s.Get("T001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Title != "Buy groceries" || again.Completed {
		t.Errorf("snapshot mutation leaked into store: %+v", again)
	}
}

func TestListEmptyStore(t *testing.T) {
	s := newTestStore(t)

	got := s.List(FilterAll)
	if got == nil {
		t.Fatal("List should return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("fresh store: got %d tasks, want 0", len(got))
	}
}

func TestListInsertionOrder(t *testing.T) {
	s := newTestStore(t, "first", "second", "third")

	got := s.List(FilterAll)
	want := []string{"T001", "T002", "T003"}
	if len(got) != len(want) {
		t.Fatalf("task count: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, w)
		}
	}

	// Deleting from the middle keeps the remaining order stable.
	if _, err := s.Delete("T002"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Create("fourth", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got = s.List(FilterAll)
	want = []string{"T001", "T003", "T004"}
	if len(got) != len(want) {
		t.Fatalf("task count after delete: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w {
			t.Errorf("position %d after delete: got %s, want %s", i, got[i].ID, w)
		}
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t, "one", "two", "three")
	if _, _, err := s.SetCompleted("T002", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}

	pending := s.List(FilterPending)
	completed := s.List(FilterCompleted)
	all := s.List(FilterAll)

	if len(pending) != 2 || pending[0].ID != "T001" || pending[1].ID != "T003" {
		t.Errorf("pending: got %v", ids(pending))
	}
	if len(completed) != 1 || completed[0].ID != "T002" {
		t.Errorf("completed: got %v", ids(completed))
	}

	// Pending and completed partition the full set.
	seen := make(map[string]int)
	for _, task := range pending {
		seen[task.ID]++
	}
	for _, task := range completed {
		seen[task.ID]++
	}
	if len(seen) != len(all) {
		t.Errorf("partition size: got %d ids, want %d", len(seen), len(all))
	}
	for _, task := range all {
		if seen[task.ID] != 1 {
			t.Errorf("id %s appeared %d times across filters, want exactly once", task.ID, seen[task.ID])
		}
	}
}

func TestUpdateTitle(t *testing.T) {
	s := newTestStore(t, "Call mom")

	title := "Call mom and dad"
	got, err := s.Update("T001", &title, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "Call mom and dad" {
		t.Errorf("title: got %q, want %q", got.Title, "Call mom and dad")
	}
	if got.ID != "T001" {
		t.Errorf("id changed: got %s, want T001", got.ID)
	}
	if !got.CreatedAt.Equal(testClock()) {
		t.Errorf("created_at changed: got %v", got.CreatedAt)
	}
}

func TestUpdateDescription(t *testing.T) {
	s := NewStore(WithClock(testClock))
	if _, err := s.Create("Buy groceries", "Milk"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	desc := "Milk, eggs, bread"
	got, err := s.Update("T001", nil, &desc)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Description != desc {
		t.Errorf("description: got %q, want %q", got.Description, desc)
	}
	if got.Title != "Buy groceries" {
		t.Errorf("title should be untouched: got %q", got.Title)
	}
}

func TestUpdateBothFields(t *testing.T) {
	s := newTestStore(t, "old")

	title := "new title"
	desc := "new description"
	got, err := s.Update("T001", &title, &desc)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != title || got.Description != desc {
		t.Errorf("got %+v, want both fields updated", got)
	}
}

func TestUpdateExplicitEmptyDescription(t *testing.T) {
	s := NewStore(WithClock(testClock))
	if _, err := s.Create("Buy groceries", "Milk"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	empty := ""
	got, err := s.Update("T001", nil, &empty)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Description != "" {
		t.Errorf("description: got %q, want cleared", got.Description)
	}
}

func TestUpdateNoChanges(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	if _, err := s.Update("T001", nil, nil); !errors.Is(err, ErrNoChanges) {
		t.Errorf("got err %v, want ErrNoChanges", err)
	}

	// The no-changes check comes before id validation, as in the CLI contract.
	if _, err := s.Update("banana", nil, nil); !errors.Is(err, ErrNoChanges) {
		t.Errorf("malformed id without changes: got err %v, want ErrNoChanges", err)
	}
}

func TestUpdateErrors(t *testing.T) {
	title := "new"
	tooLong := strings.Repeat("x", MaxTitleLen+1)

	tests := []struct {
		name    string
		id      string
		title   *string
		wantErr error
	}{
		{name: "invalid id", id: "banana", title: &title, wantErr: ErrInvalidID},
		{name: "empty title", id: "T001", title: strptr("   "), wantErr: ErrEmptyTitle},
		{name: "title too long", id: "T001", title: &tooLong, wantErr: ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, "Buy groceries")
			if _, err := s.Update(tt.id, tt.title, nil); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Update: got err %v, want %v", err, tt.wantErr)
			}
		})
	}

	s := newTestStore(t, "Buy groceries")
	var nf *NotFoundError
	if _, err := s.Update("T999", &title, nil); !errors.As(err, &nf) {
		t.Errorf("missing id: got err %v, want NotFoundError", err)
	}
}

func TestUpdateIsAllOrNothing(t *testing.T) {
	s := NewStore(WithClock(testClock))
	if _, err := s.Create("original", "original description"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Valid title plus invalid description must not half-apply.
	title := "new title"
	tooLong := strings.Repeat("x", MaxDescriptionLen+1)
	if _, err := s.Update("T001", &title, &tooLong); !errors.Is(err, ErrDescriptionTooLong) {
		t.Fatalf("Update: got err %v, want ErrDescriptionTooLong", err)
	}

	got, err := s.Get("T001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "original" || got.Description != "original description" {
		t.Errorf("failed update mutated the task: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, "Buy groceries", "Call mom")

	snapshot, err := s.Delete("T001")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if snapshot.ID != "T001" || snapshot.Title != "Buy groceries" {
		t.Errorf("snapshot: got %+v, want the removed task", snapshot)
	}

	var nf *NotFoundError
	if _, err := s.Get("T001"); !errors.As(err, &nf) {
		t.Errorf("Get after delete: got err %v, want NotFoundError", err)
	}
	for _, task := range s.List(FilterAll) {
		if task.ID == "T001" {
			t.Error("deleted task still listed")
		}
	}
}

func TestDeleteErrors(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	if _, err := s.Delete("banana"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("malformed id: got err %v, want ErrInvalidID", err)
	}
	var nf *NotFoundError
	if _, err := s.Delete("T999"); !errors.As(err, &nf) {
		t.Errorf("missing id: got err %v, want NotFoundError", err)
	}
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	s := newTestStore(t, "one", "two")

	if _, err := s.Delete("T001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	task, err := s.Create("three", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID != "T003" {
		t.Errorf("id after delete: got %s, want T003 (T001 must not be reused)", task.ID)
	}
}

func TestSetCompletedIdempotent(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	task, changed, err := s.SetCompleted("T001", true)
	if err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if !changed {
		t.Error("first completion: changed = false, want true")
	}
	if !task.Completed {
		t.Error("first completion: task not completed")
	}

	task, changed, err = s.SetCompleted("T001", true)
	if err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if changed {
		t.Error("repeat completion: changed = true, want false")
	}
	if !task.Completed {
		t.Error("repeat completion: stored state flipped")
	}
}

func TestSetCompletedRoundTrip(t *testing.T) {
	s := newTestStore(t, "Buy groceries")

	if _, changed, _ := s.SetCompleted("T001", true); !changed {
		t.Error("complete: changed = false, want true")
	}
	if _, changed, _ := s.SetCompleted("T001", false); !changed {
		t.Error("incomplete: changed = false, want true")
	}
	if _, changed, _ := s.SetCompleted("T001", false); changed {
		t.Error("repeat incomplete: changed = true, want false")
	}

	got, err := s.Get("T001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Completed {
		t.Error("final state: got completed, want pending")
	}
}

func TestSetCompletedErrors(t *testing.T) {
	s := newTestStore(t)

	if _, _, err := s.SetCompleted("banana", true); !errors.Is(err, ErrInvalidID) {
		t.Errorf("malformed id: got err %v, want ErrInvalidID", err)
	}
	var nf *NotFoundError
	if _, _, err := s.SetCompleted("T001", true); !errors.As(err, &nf) {
		t.Errorf("missing id: got err %v, want NotFoundError", err)
	}
}

func TestCompletionUpdatesPendingView(t *testing.T) {
	s := newTestStore(t, "Buy groceries", "Call mom")

	if _, _, err := s.SetCompleted("T001", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	pending := s.List(FilterPending)
	if len(pending) != 1 || pending[0].ID != "T002" {
		t.Errorf("pending view: got %v, want [T002]", ids(pending))
	}
}

func TestProgress(t *testing.T) {
	s := newTestStore(t, "one", "two", "three")

	completed, total := s.Progress()
	if completed != 0 || total != 3 {
		t.Errorf("fresh: got %d/%d, want 0/3", completed, total)
	}

	if _, _, err := s.SetCompleted("T002", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	completed, total = s.Progress()
	if completed != 1 || total != 3 {
		t.Errorf("after completion: got %d/%d, want 1/3", completed, total)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{in: "", want: FilterAll},
		{in: "all", want: FilterAll},
		{in: "ALL", want: FilterAll},
		{in: "pending", want: FilterPending},
		{in: " completed ", want: FilterCompleted},
		{in: "done", wantErr: true},
		{in: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFilter(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFilter(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConcurrentCreatesProduceUniqueIDs(t *testing.T) {
	s := NewStore(WithClock(testClock))

	const goroutines = 8
	const perGoroutine = 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				if _, err := s.Create("task", ""); err != nil {
					t.Errorf("Create failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	all := s.List(FilterAll)
	if len(all) != goroutines*perGoroutine {
		t.Fatalf("task count: got %d, want %d", len(all), goroutines*perGoroutine)
	}
	seen := make(map[string]bool, len(all))
	for _, task := range all {
		if seen[task.ID] {
			t.Errorf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func strptr(s string) *string {
	return &s
}
