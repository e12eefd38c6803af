package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/taskflow/internal/task"
)

// JSONStore implements task.Store using a JSON file.
type JSONStore struct {
	// SchemaPath is an optional JSON Schema file used instead of the
	// embedded schema.
	SchemaPath string
}

// NewJSONStore returns a JSONStore configured by opts.
func NewJSONStore(opts Options) *JSONStore {
	return &JSONStore{SchemaPath: opts.SchemaPath}
}

// Load reads and validates the task file at location.
func (s *JSONStore) Load(location string) ([]task.Task, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []task.Task{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &task.MalformedStoreError{Location: location, Err: err}
	}

	schema, err := loadSchema(s.SchemaPath)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(location, err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &task.MalformedStoreError{Location: location, Err: err}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := checkUniqueIDs(location, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save writes tasks to location with 2-space indentation, replacing any
// previous content.
func (s *JSONStore) Save(location string, tasks []task.Task) error {
	data, err := encodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	dir := filepath.Dir(location)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task file dir: %w", err)
	}

	if err := writeFileAtomic(location, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// encodeTasks renders tasks as an indented JSON array with a trailing newline.
func encodeTasks(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
