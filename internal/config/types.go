package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/taskflow/internal/logging"
	"github.com/nibzard/taskflow/internal/store"
	"github.com/nibzard/taskflow/internal/taskdir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
var (
	DefaultStoreFile  = taskdir.StorePath("")
	DefaultSQLiteFile = taskdir.SQLitePath("")
)

const (
	DefaultBackend   = string(store.DefaultBackend)
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskflow.
type Config struct {
	// Store
	StoreFile    string `toml:"store_file"`
	StoreBackend string `toml:"store_backend"`
	SchemaFile   string `toml:"schema_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// StoreOptions returns the options passed to the store backend.
func (c *Config) StoreOptions() store.Options {
	return store.Options{SchemaPath: c.SchemaFile}
}

// LogOptions returns the logger options for this configuration.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		Timestamps: c.LogTimestamps,
		Caller:     c.LogCaller,
		Prefix:     logging.DefaultPrefix,
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := store.ParseBackend(c.StoreBackend); err != nil {
		errs = append(errs, err)
	}
	if !logging.IsLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q, must be one of: %s", c.LogLevel, strings.Join(logging.Levels(), ", ")))
	}
	if !logging.IsFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("unknown log format %q, must be one of: %s", c.LogFormat, strings.Join(logging.Formats(), ", ")))
	}
	if strings.TrimSpace(c.StoreFile) == "" {
		errs = append(errs, errors.New("store_file is empty"))
	}
	return errors.Join(errs...)
}
