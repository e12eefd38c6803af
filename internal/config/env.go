package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKFLOW_* environment variables and
// updates source tracking.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("TASKFLOW_STORE", "store_file", &cfg.StoreFile)
	setString("TASKFLOW_BACKEND", "store_backend", &cfg.StoreBackend)
	setString("TASKFLOW_SCHEMA", "schema_file", &cfg.SchemaFile)

	// Logging configuration
	setString("TASKFLOW_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKFLOW_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKFLOW_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKFLOW_LOG_CALLER", "log_caller", &cfg.LogCaller)
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
