package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	loadFromEnvHelper(cfg, nil, "")
}

// loadFromEnvWithSources loads environment variables and updates source tracking.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	loadFromEnvHelper(cfg, sources, SourceEnv)
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv("TODO_DEFAULT_FILTER"); v != "" {
		cfg.DefaultFilter = v
		mark("default_filter")
	}
	if v := os.Getenv("TODO_VERBOSE"); v != "" {
		cfg.Verbose = boolFromString(v)
		mark("verbose")
	}
	if v := os.Getenv("TODO_NO_COLOR"); v != "" {
		cfg.NoColor = boolFromString(v)
		mark("no_color")
	}
	// Standard NO_COLOR convention: any non-empty value disables color.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.NoColor = true
		mark("no_color")
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("TODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv("TODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
