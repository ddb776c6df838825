package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/AfiaBakr/todo-app-phase1/internal/config"
	"github.com/AfiaBakr/todo-app-phase1/internal/todo"
)

// splitLeadingArg peels a leading positional off args so commands accept
// "todo add TITLE -d DESC" as well as flags-first order. The flag package
// stops parsing at the first non-flag argument, so a trailing positional
// lands in fs.Args instead.
func splitLeadingArg(args []string) (value string, ok bool, rest []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", false, args
	}
	return args[0], true, args[1:]
}

// resolveLeadingArg merges the pre-parsed positional with whatever the flag
// parse left over, requiring exactly one.
func resolveLeadingArg(fs *flag.FlagSet, value string, ok bool, what string) (string, error) {
	if !ok {
		if fs.NArg() == 0 {
			return "", fmt.Errorf("missing %s", what)
		}
		if fs.NArg() > 1 {
			return "", fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
		}
		return fs.Arg(0), nil
	}
	if fs.NArg() > 0 {
		return "", fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return value, nil
}

// addCommand creates a task and echoes its assigned id.
func addCommand(cfg *config.Config, store *todo.Store, args []string) error {
	fs := flag.NewFlagSet("todo add", flag.ContinueOnError)
	var description string
	fs.StringVar(&description, "description", "", "Description for the task (optional)")
	fs.StringVar(&description, "d", "", "Description for the task (optional)")

	title, ok, rest := splitLeadingArg(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	title, err := resolveLeadingArg(fs, title, ok, "task title")
	if err != nil {
		return err
	}

	task, err := store.Create(title, description)
	if err != nil {
		return err
	}
	fmt.Printf("Task %s created: \"%s\"\n", task.ID, task.Title)
	return nil
}

// listCommand prints tasks in insertion order, optionally filtered.
func listCommand(cfg *config.Config, store *todo.Store, args []string) error {
	fs := flag.NewFlagSet("todo list", flag.ContinueOnError)
	var filterArg string
	fs.StringVar(&filterArg, "filter", cfg.DefaultFilter, "Show only pending or completed tasks")
	fs.StringVar(&filterArg, "f", cfg.DefaultFilter, "Show only pending or completed tasks")
	verbose := fs.Bool("verbose", cfg.Verbose, "Show descriptions and creation times")
	fs.BoolVar(verbose, "V", cfg.Verbose, "Show descriptions and creation times")
	asJSON := fs.Bool("json", false, "Emit tasks as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	filter, err := todo.ParseFilter(filterArg)
	if err != nil {
		return err
	}

	tasks := store.List(filter)

	if *asJSON {
		return printJSON(tasks)
	}

	if len(tasks) == 0 {
		if filter == todo.FilterAll {
			fmt.Println("No tasks found. Use 'todo add <title>' to create one.")
		} else {
			fmt.Printf("No %s tasks found.\n", filter)
		}
		return nil
	}

	label := fmt.Sprintf("%d total", len(tasks))
	switch filter {
	case todo.FilterPending:
		label = fmt.Sprintf("%d pending", len(tasks))
	case todo.FilterCompleted:
		label = fmt.Sprintf("%d completed", len(tasks))
	}
	fmt.Printf("Tasks (%s):\n", label)
	for _, t := range tasks {
		printTaskLine(t, *verbose)
	}
	return nil
}

// viewCommand prints the full detail block for one task.
func viewCommand(cfg *config.Config, store *todo.Store, args []string) error {
	fs := flag.NewFlagSet("todo view", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Emit the task as JSON")

	id, ok, rest := splitLeadingArg(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	id, err := resolveLeadingArg(fs, id, ok, "task id")
	if err != nil {
		return err
	}

	task, err := store.Get(id)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(task)
	}
	fmt.Printf("Task %s\n", task.ID)
	fmt.Printf("Title: %s\n", task.Title)
	fmt.Printf("Description: %s\n", orDash(task.Description))
	fmt.Printf("Status: %s\n", task.StatusDisplay())
	fmt.Printf("Created: %s\n", task.FormatCreatedAt())
	return nil
}

// updateCommand changes a task's title and/or description.
func updateCommand(cfg *config.Config, store *todo.Store, args []string) error {
	fs := flag.NewFlagSet("todo update", flag.ContinueOnError)
	var titleArg, descriptionArg string
	fs.StringVar(&titleArg, "title", "", "New title for the task")
	fs.StringVar(&titleArg, "t", "", "New title for the task")
	fs.StringVar(&descriptionArg, "description", "", "New description for the task")
	fs.StringVar(&descriptionArg, "d", "", "New description for the task")

	id, ok, rest := splitLeadingArg(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	id, err := resolveLeadingArg(fs, id, ok, "task id")
	if err != nil {
		return err
	}

	// Only flags the user actually set become updates. An explicit empty
	// string clears the description.
	var title, description *string
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title", "t":
			title = &titleArg
		case "description", "d":
			description = &descriptionArg
		}
	})

	task, err := store.Update(id, title, description)
	if err != nil {
		return err
	}
	fmt.Printf("Task %s updated: \"%s\"\n", task.ID, task.Title)
	return nil
}

// deleteCommand removes a task permanently. Deleted ids are never reused.
func deleteCommand(cfg *config.Config, store *todo.Store, args []string) error {
	fs := flag.NewFlagSet("todo delete", flag.ContinueOnError)
	id, ok, rest := splitLeadingArg(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	id, err := resolveLeadingArg(fs, id, ok, "task id")
	if err != nil {
		return err
	}

	task, err := store.Delete(id)
	if err != nil {
		return err
	}
	fmt.Printf("Task %s deleted: \"%s\"\n", task.ID, task.Title)
	return nil
}

// setCompletedCommand backs both "complete" and "incomplete". Repeating
// either is reported, not treated as an error.
func setCompletedCommand(cfg *config.Config, store *todo.Store, args []string, completed bool) error {
	name := "todo complete"
	if !completed {
		name = "todo incomplete"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id, ok, rest := splitLeadingArg(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	id, err := resolveLeadingArg(fs, id, ok, "task id")
	if err != nil {
		return err
	}

	task, changed, err := store.SetCompleted(id, completed)
	if err != nil {
		return err
	}
	switch {
	case changed && completed:
		fmt.Printf("Task %s marked complete: \"%s\"\n", task.ID, task.Title)
	case changed:
		fmt.Printf("Task %s marked incomplete: \"%s\"\n", task.ID, task.Title)
	case completed:
		fmt.Printf("Task %s is already complete\n", task.ID)
	default:
		fmt.Printf("Task %s is already incomplete\n", task.ID)
	}
	return nil
}

// printTaskLine prints one list row, with detail lines when verbose.
func printTaskLine(t todo.Task, verbose bool) {
	fmt.Printf("%s %s: %s\n", t.Checkbox(), t.ID, t.Title)
	if verbose {
		fmt.Printf("    Description: %s\n", orDash(t.Description))
		fmt.Printf("    Created: %s\n", t.FormatCreatedAt())
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
