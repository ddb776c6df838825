package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by environment variables (TODO_*) or CLI flags.

# Default filter for 'todo list': all, pending, or completed
default_filter = "all"

# Show descriptions and creation times in listings by default
verbose = false

# Disable colored output (the standard NO_COLOR env var also works)
no_color = false

# Log level: debug, info, warn, or error
# The default "warn" keeps normal command output free of log noise.
log_level = "warn"

# Log format: text, json, or logfmt
log_format = "text"

# Show timestamps in logs
log_timestamps = false

# Show caller location in logs
log_caller = false
`
}
