// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AfiaBakr/todo-app-phase1/internal/config"
	"github.com/AfiaBakr/todo-app-phase1/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	out io.Writer
}

// WithOutput redirects TUI rendering, mainly for tests.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.out = w
	}
}

// RunTUI starts an interactive session over the given store. The store
// lives only as long as the session; quitting discards all tasks.
func RunTUI(ctx context.Context, cfg *config.Config, store *todo.Store, opts ...TUIOption) error {
	c := &tuiConfig{
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.out) {
		return fmt.Errorf("tui requires a TTY")
	}
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := newTUIModel(cfg, store)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(c.out))
	_, err := program.Run()
	return err
}

// inputMode says what the text input is currently capturing.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeAddTitle
	modeAddDescription
	modeEditTitle
	modeEditDescription
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		return styles{
			title:    lipgloss.NewStyle(),
			header:   lipgloss.NewStyle(),
			selected: lipgloss.NewStyle(),
			help:     lipgloss.NewStyle(),
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Bold(true),
		selected: lipgloss.NewStyle().Bold(true),
		help:     lipgloss.NewStyle().Faint(true),
	}
}

type tuiModel struct {
	store   *todo.Store
	styles  styles
	filter  todo.Filter
	verbose bool

	tasks  []todo.Task
	cursor int

	mode         inputMode
	input        textinput.Model
	pendingTitle string
	editID       string

	status   string
	showHelp bool
}

func newTUIModel(cfg *config.Config, store *todo.Store) *tuiModel {
	filter, err := todo.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		filter = todo.FilterAll
	}
	m := &tuiModel{
		store:   store,
		styles:  newStyles(cfg.NoColor),
		filter:  filter,
		verbose: cfg.Verbose,
		input:   textinput.New(),
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode != modeBrowse {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.mode != modeBrowse {
		return m.updateInput(keyMsg)
	}
	if m.showHelp {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.showHelp = false
			return m, nil
		}
	}
	return m.updateBrowse(keyMsg)
}

func (m *tuiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "f":
		m.cycleFilter()
	case "v":
		m.verbose = !m.verbose
	case " ", "x":
		m.toggleCompleted()
	case "d":
		m.deleteCurrent()
	case "a":
		return m.startInput(modeAddTitle, "Task title", todo.MaxTitleLen, "")
	case "r":
		if task, ok := m.current(); ok {
			m.editID = task.ID
			return m.startInput(modeEditTitle, "Task title", todo.MaxTitleLen, task.Title)
		}
	case "D":
		if task, ok := m.current(); ok {
			m.editID = task.ID
			return m.startInput(modeEditDescription, "Description", todo.MaxDescriptionLen, task.Description)
		}
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		m.status = ""
		return m, nil
	case "enter":
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startInput switches to an input mode with a fresh prompt.
func (m *tuiModel) startInput(mode inputMode, placeholder string, limit int, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.status = ""
	m.input = textinput.New()
	m.input.Placeholder = placeholder
	m.input.CharLimit = limit
	m.input.SetValue(value)
	return m, m.input.Focus()
}

func (m *tuiModel) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.mode {
	case modeAddTitle:
		// Validate before asking for a description so a bad title
		// fails immediately.
		if _, err := todo.ValidateTitle(value); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.pendingTitle = value
		return m.startInput(modeAddDescription, "Description (enter to skip)", todo.MaxDescriptionLen, "")
	case modeAddDescription:
		task, err := m.store.Create(m.pendingTitle, value)
		m.finishInput(err, func() string {
			return fmt.Sprintf("Task %s created: \"%s\"", task.ID, task.Title)
		})
		if err == nil {
			m.moveCursorTo(task.ID)
		}
	case modeEditTitle:
		task, err := m.store.Update(m.editID, &value, nil)
		m.finishInput(err, func() string {
			return fmt.Sprintf("Task %s updated: \"%s\"", task.ID, task.Title)
		})
	case modeEditDescription:
		task, err := m.store.Update(m.editID, nil, &value)
		m.finishInput(err, func() string {
			return fmt.Sprintf("Task %s updated: \"%s\"", task.ID, task.Title)
		})
	}
	return m, nil
}

// finishInput returns to browse mode and sets the status line from the
// outcome of a store operation.
func (m *tuiModel) finishInput(err error, okStatus func() string) {
	m.mode = modeBrowse
	m.input.Blur()
	m.pendingTitle = ""
	m.editID = ""
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = okStatus()
	m.refresh()
}

func (m *tuiModel) cycleFilter() {
	switch m.filter {
	case todo.FilterAll:
		m.filter = todo.FilterPending
	case todo.FilterPending:
		m.filter = todo.FilterCompleted
	default:
		m.filter = todo.FilterAll
	}
	m.status = ""
	m.refresh()
}

func (m *tuiModel) toggleCompleted() {
	task, ok := m.current()
	if !ok {
		return
	}
	updated, changed, err := m.store.SetCompleted(task.ID, !task.Completed)
	if err != nil {
		m.status = err.Error()
		return
	}
	switch {
	case changed && updated.Completed:
		m.status = fmt.Sprintf("Task %s marked complete: \"%s\"", updated.ID, updated.Title)
	case changed:
		m.status = fmt.Sprintf("Task %s marked incomplete: \"%s\"", updated.ID, updated.Title)
	case updated.Completed:
		m.status = fmt.Sprintf("Task %s is already complete", updated.ID)
	default:
		m.status = fmt.Sprintf("Task %s is already incomplete", updated.ID)
	}
	m.refresh()
	m.moveCursorTo(updated.ID)
}

func (m *tuiModel) deleteCurrent() {
	task, ok := m.current()
	if !ok {
		return
	}
	deleted, err := m.store.Delete(task.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Task %s deleted: \"%s\"", deleted.ID, deleted.Title)
	m.refresh()
}

// refresh rebuilds the visible task slice and clamps the cursor.
func (m *tuiModel) refresh() {
	m.tasks = m.store.List(m.filter)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveCursorTo points the cursor at the given task if it is visible.
func (m *tuiModel) moveCursorTo(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *tuiModel) current() (todo.Task, bool) {
	if len(m.tasks) == 0 || m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		m.writeHelp(&b)
		return b.String()
	}

	if m.mode != modeBrowse {
		m.writeInput(&b)
	} else {
		m.writeTasks(&b)
	}

	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	completed, total := m.store.Progress()
	title := fmt.Sprintf("todo  %d/%d done", completed, total)
	b.WriteString(m.styles.title.Render(title) + "\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	if len(m.tasks) == 0 {
		if m.filter == todo.FilterAll {
			b.WriteString("No tasks found. Use 'a' to create one.\n")
		} else {
			b.WriteString(fmt.Sprintf("No %s tasks found.\n", string(m.filter)))
		}
		b.WriteString("\n")
		return
	}

	var header string
	switch m.filter {
	case todo.FilterPending:
		header = fmt.Sprintf("Tasks (%d pending):", len(m.tasks))
	case todo.FilterCompleted:
		header = fmt.Sprintf("Tasks (%d completed):", len(m.tasks))
	default:
		header = fmt.Sprintf("Tasks (%d total):", len(m.tasks))
	}
	b.WriteString(m.styles.header.Render(header) + "\n")

	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s: %s", t.Checkbox(), t.ID, t.Title)
		if i == m.cursor {
			b.WriteString("> " + m.styles.selected.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		if m.verbose {
			description := t.Description
			if description == "" {
				description = "-"
			}
			b.WriteString(fmt.Sprintf("      Description: %s\n", description))
			b.WriteString(fmt.Sprintf("      Created: %s\n", t.FormatCreatedAt()))
		}
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeInput(b *strings.Builder) {
	var label string
	switch m.mode {
	case modeAddTitle:
		label = "Add task"
	case modeAddDescription:
		label = fmt.Sprintf("Description for %q (enter to skip)", m.pendingTitle)
	case modeEditTitle:
		label = fmt.Sprintf("New title for %s", m.editID)
	case modeEditDescription:
		label = fmt.Sprintf("New description for %s", m.editID)
	}
	b.WriteString(label + "\n")
	b.WriteString(m.input.View() + "\n\n")
}

func (m *tuiModel) writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j/k, arrows  Move cursor\n")
	b.WriteString("  f            Cycle filter (all, pending, completed)\n")
	b.WriteString("  v            Toggle descriptions and creation times\n")
	b.WriteString("  space, x     Toggle completion\n")
	b.WriteString("  a            Add a task\n")
	b.WriteString("  r            Rename the selected task\n")
	b.WriteString("  D            Edit the selected task's description\n")
	b.WriteString("  d            Delete the selected task\n")
	b.WriteString("  ?            Toggle this help screen\n\n")
	b.WriteString(m.styles.help.Render("Press any key to go back") + "\n")
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	var hint string
	if m.mode == modeBrowse {
		hint = "Press ? for help | q to quit"
	} else {
		hint = "Press enter to confirm | esc to cancel"
	}
	b.WriteString(m.styles.help.Render(hint) + "\n")
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
