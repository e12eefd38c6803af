package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskflow configuration file
# Values can be overridden by TASKFLOW_* environment variables or CLI flags.

# Task store (relative to the project root, supports ~ and $VAR expansion)
# store_file = ".taskflow/tasks.json"

# Store backend: json or sqlite
# With sqlite and no store_file, .taskflow/tasks.db is used.
store_backend = "json"

# JSON Schema used to validate the json store (default: embedded schema)
# schema_file = "tasks.schema.json"

# Logging (written to stderr)
log_level = "warn"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
