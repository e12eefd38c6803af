package config

import (
	"fmt"
	"strconv"
)

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreFile = DefaultStoreFile
	cfg.StoreBackend = DefaultBackend
	cfg.SchemaFile = ""
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// Entry is one resolved configuration value.
type Entry struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Entries returns every configuration value with its source, in the order
// of configFields.
func (cws *ConfigWithSources) Entries() []Entry {
	cfg := cws.Config
	values := map[string]string{
		"store_file":     cfg.StoreFile,
		"store_backend":  cfg.StoreBackend,
		"schema_file":    cfg.SchemaFile,
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": strconv.FormatBool(cfg.LogTimestamps),
		"log_caller":     strconv.FormatBool(cfg.LogCaller),
	}

	entries := make([]Entry, 0, len(values))
	for _, key := range configFields() {
		source, ok := cws.Sources[key]
		if !ok {
			source = SourceDefault
		}
		entries = append(entries, Entry{Key: key, Value: values[key], Source: source})
	}
	return entries
}

// GetConfigFile returns the config file with the highest precedence that was
// read, or "" if none was.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

func (e Entry) String() string {
	value := e.Value
	if value == "" {
		value = `""`
	}
	return fmt.Sprintf("%s = %s (%s)", e.Key, value, e.Source)
}
