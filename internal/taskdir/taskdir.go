// Package taskdir provides constants and helpers for the .taskflow directory
// layout inside a project.
package taskdir

import "path/filepath"

const (
	// Dir is the name of the taskflow state directory.
	Dir = ".taskflow"

	// DefaultStoreFile is the JSON store file name (inside .taskflow).
	DefaultStoreFile = "tasks.json"

	// DefaultSQLiteFile is the SQLite store file name (inside .taskflow).
	DefaultSQLiteFile = "tasks.db"

	// DefaultSchemaFile is the editable copy of the store schema written by
	// init -write-schema (inside .taskflow).
	DefaultSchemaFile = "tasks.schema.json"

	// DefaultConfigFile is the config file name, both in the project root
	// and inside the user's ~/.taskflow directory.
	DefaultConfigFile = "taskflow.toml"
)

// StorePath returns the JSON store path within a work directory.
func StorePath(workDir string) string {
	return joinPath(workDir, DefaultStoreFile)
}

// SQLitePath returns the SQLite store path within a work directory.
func SQLitePath(workDir string) string {
	return joinPath(workDir, DefaultSQLiteFile)
}

// SchemaPath returns the editable schema path within a work directory.
func SchemaPath(workDir string) string {
	return joinPath(workDir, DefaultSchemaFile)
}

// DirPath returns the .taskflow directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
