package config

import (
	"flag"
)

// FlagError reports command-line flags that could not be parsed.
type FlagError struct {
	Err error
}

func (e *FlagError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FlagError) Unwrap() error {
	return e.Err
}

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskflow", flag.ContinueOnError)
	}

	var storeFile, backend, schemaFile, logLevel, logFormat string
	var logTimestamps, logCaller bool

	fs.StringVar(&storeFile, "store", cfg.StoreFile, "Path to the task store")
	fs.StringVar(&backend, "backend", cfg.StoreBackend, "Store backend (json, sqlite)")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "JSON Schema file for the json backend (default embedded)")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return &FlagError{Err: err}
	}

	// Map flag names to config fields
	apply := map[string]struct {
		field string
		set   func()
	}{
		"store":          {"store_file", func() { cfg.StoreFile = storeFile }},
		"backend":        {"store_backend", func() { cfg.StoreBackend = backend }},
		"schema":         {"schema_file", func() { cfg.SchemaFile = schemaFile }},
		"log-level":      {"log_level", func() { cfg.LogLevel = logLevel }},
		"log-format":     {"log_format", func() { cfg.LogFormat = logFormat }},
		"log-timestamps": {"log_timestamps", func() { cfg.LogTimestamps = logTimestamps }},
		"log-caller":     {"log_caller", func() { cfg.LogCaller = logCaller }},
	}

	fs.Visit(func(f *flag.Flag) {
		binding, ok := apply[f.Name]
		if !ok {
			return
		}
		binding.set()
		sources[binding.field] = SourceFlag
	})

	return nil
}
