package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todo/todo.toml or OS-specific config dir)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Normalize and validate
	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnvWithSources(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlagsWithSources(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Normalize and validate
	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
	}, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"default_filter",
		"verbose",
		"no_color",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	collectUndecoded(cfg, path, md)
	return nil
}

// loadConfigFileWithSources loads TOML config and updates source tracking.
// Only keys actually present in the file override earlier layers.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	tempCfg := &Config{}
	md, err := toml.DecodeFile(path, tempCfg)
	if err != nil {
		return err
	}

	if md.IsDefined("default_filter") {
		cfg.DefaultFilter = tempCfg.DefaultFilter
		sources["default_filter"] = source
	}
	if md.IsDefined("verbose") {
		cfg.Verbose = tempCfg.Verbose
		sources["verbose"] = source
	}
	if md.IsDefined("no_color") {
		cfg.NoColor = tempCfg.NoColor
		sources["no_color"] = source
	}
	if md.IsDefined("log_level") {
		cfg.LogLevel = tempCfg.LogLevel
		sources["log_level"] = source
	}
	if md.IsDefined("log_format") {
		cfg.LogFormat = tempCfg.LogFormat
		sources["log_format"] = source
	}
	if md.IsDefined("log_timestamps") {
		cfg.LogTimestamps = tempCfg.LogTimestamps
		sources["log_timestamps"] = source
	}
	if md.IsDefined("log_caller") {
		cfg.LogCaller = tempCfg.LogCaller
		sources["log_caller"] = source
	}

	collectUndecoded(cfg, path, md)
	return nil
}

// collectUndecoded records unknown config file keys as warnings.
func collectUndecoded(cfg *Config, path string, md toml.MetaData) {
	for _, key := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: unknown config key %q", path, key.String()))
	}
}

// finalizeConfig normalizes values and rejects ones no command could use.
func finalizeConfig(cfg *Config) error {
	cfg.DefaultFilter = strings.ToLower(strings.TrimSpace(cfg.DefaultFilter))
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = DefaultListFilter
	}
	switch cfg.DefaultFilter {
	case "all", "pending", "completed":
	default:
		return fmt.Errorf("invalid default_filter %q (expected all, pending, or completed)", cfg.DefaultFilter)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	return nil
}
