// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AfiaBakr/todo-app-phase1/internal/config"
	"github.com/AfiaBakr/todo-app-phase1/internal/logging"
	"github.com/AfiaBakr/todo-app-phase1/internal/todo"
	"github.com/AfiaBakr/todo-app-phase1/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	if *help {
		printUsage(os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand. Bare "todo" shows the command guide.
	subcommand := ""
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	logger.Debug("dispatching", "command", subcommand, "config_file", cws.GetConfigFile())

	// Tasks live for the lifetime of the process only.
	store := todo.NewStore()

	// Execute the subcommand
	switch subcommand {
	case "":
		printUsage(os.Stdout)
		return nil
	case "add":
		return addCommand(cfg, store, remainingArgs)
	case "list":
		return listCommand(cfg, store, remainingArgs)
	case "view":
		return viewCommand(cfg, store, remainingArgs)
	case "update":
		return updateCommand(cfg, store, remainingArgs)
	case "delete":
		return deleteCommand(cfg, store, remainingArgs)
	case "complete":
		return setCompletedCommand(cfg, store, remainingArgs, true)
	case "incomplete":
		return setCompletedCommand(cfg, store, remainingArgs, false)
	case "tui":
		return tuiCommand(ctx, cfg, store, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "schema":
		return schemaCommand(remainingArgs)
	case "config":
		return configCommand(remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, store *todo.Store, args []string) error {
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return ui.RunTUI(ctx, cfg, store)
}

// doctorCommand checks configuration and environment health.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Show effective settings and their sources")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := cws.Config

	fmt.Println("Todo Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	fmt.Printf("Version: %s\n", Version)
	fmt.Println()

	// Check config files
	fmt.Println("Config:")
	if explicit := os.Getenv("TODO_CONFIG"); explicit != "" && config.UserConfigFile() == "" {
		fmt.Printf("  ❌ TODO_CONFIG points at a missing file: %s\n", explicit)
		allOK = false
	}
	if user := config.UserConfigFile(); user != "" {
		fmt.Printf("  ✅ User config: %s\n", user)
	} else {
		fmt.Println("  ⚠️  User config: not found (defaults apply)")
	}
	if proj := config.ProjectConfigFile(); proj != "" {
		fmt.Printf("  ✅ Project config: %s\n", proj)
	} else {
		fmt.Println("  ⚠️  Project config: not found")
	}
	for _, warning := range cfg.Warnings {
		fmt.Printf("  ⚠️  %s\n", warning)
	}
	fmt.Println()

	if *verbose {
		fmt.Println("Settings:")
		settings := []struct {
			key   string
			value any
		}{
			{"default_filter", cfg.DefaultFilter},
			{"verbose", cfg.Verbose},
			{"no_color", cfg.NoColor},
			{"log_level", cfg.LogLevel},
			{"log_format", cfg.LogFormat},
			{"log_timestamps", cfg.LogTimestamps},
			{"log_caller", cfg.LogCaller},
		}
		for _, s := range settings {
			fmt.Printf("  ✅ %s = %v (from %s)\n", s.key, s.value, cws.Sources[s.key])
		}
		fmt.Println()
	}

	// Check the embedded task schema
	fmt.Println("Schema:")
	if _, err := todo.CompileTaskSchema(); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check terminal capabilities
	fmt.Println("Terminal:")
	if ui.IsTTY(os.Stdout) {
		fmt.Println("  ✅ stdout is a terminal")
	} else {
		fmt.Println("  ⚠️  stdout is not a terminal (tui unavailable)")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Todo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// schemaCommand prints the JSON Schema for the task wire format.
func schemaCommand(args []string) error {
	fs := flag.NewFlagSet("todo schema", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fmt.Println(string(todo.TaskSchemaJSON()))
	return nil
}

// configCommand prints an annotated example configuration file.
func configCommand(args []string) error {
	fs := flag.NewFlagSet("todo config", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fmt.Print(config.ExampleConfig())
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("todo, version %s\n", Version)
	return nil
}

// printUsage prints the command guide.
func printUsage(w io.Writer) {
	bar := strings.Repeat("=", 50)
	rule := strings.Repeat("-", 50)

	fmt.Fprintln(w)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w, "  THE EVOLUTION OF TODO - Command Guide")
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "AVAILABLE COMMANDS:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  add         Create a new task")
	fmt.Fprintln(w, "              Usage: todo add \"Task title\" [-d \"Description\"]")
	fmt.Fprintln(w, "              Example: todo add \"Buy groceries\" -d \"Milk, eggs\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  list        Show all tasks")
	fmt.Fprintln(w, "              Usage: todo list [--filter pending|completed]")
	fmt.Fprintln(w, "              Example: todo list --filter pending")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  view        View task details")
	fmt.Fprintln(w, "              Usage: todo view <task_id>")
	fmt.Fprintln(w, "              Example: todo view T001")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  update      Update a task's title or description")
	fmt.Fprintln(w, "              Usage: todo update <task_id> [--title \"New\"] [--description \"New\"]")
	fmt.Fprintln(w, "              Example: todo update T001 --title \"New title\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  delete      Delete a task")
	fmt.Fprintln(w, "              Usage: todo delete <task_id>")
	fmt.Fprintln(w, "              Example: todo delete T001")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  complete    Mark a task as done")
	fmt.Fprintln(w, "              Usage: todo complete <task_id>")
	fmt.Fprintln(w, "              Example: todo complete T001")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  incomplete  Reopen a completed task")
	fmt.Fprintln(w, "              Usage: todo incomplete <task_id>")
	fmt.Fprintln(w, "              Example: todo incomplete T001")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  tui         Browse and edit tasks interactively")
	fmt.Fprintln(w, "              Usage: todo tui")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  doctor      Check configuration and environment")
	fmt.Fprintln(w, "              Usage: todo doctor [-v]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  schema      Print the task JSON Schema")
	fmt.Fprintln(w, "              Usage: todo schema")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  config      Print an example configuration file")
	fmt.Fprintln(w, "              Usage: todo config")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  completion  Print a shell completion script")
	fmt.Fprintln(w, "              Usage: todo completion bash|zsh|fish|powershell")
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprintln(w, "  --version, -v    Show app version")
	fmt.Fprintln(w, "  --help           Show this help message")
	fmt.Fprintln(w, "  --no-color       Disable colored output")
	fmt.Fprintln(w, "  --log-level      Log verbosity (debug|info|warn|error)")
	fmt.Fprintln(w, "  --log-format     Log format (text|json|logfmt)")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "QUICK START:")
	fmt.Fprintln(w, "  1. todo add \"My first task\"    # Create a task")
	fmt.Fprintln(w, "  2. todo list                   # See all tasks")
	fmt.Fprintln(w, "  3. todo complete T001          # Mark it done")
	fmt.Fprintln(w)
}
