package store

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskflow/internal/task"
)

//go:embed tasks.schema.json
var embeddedSchema string

// EmbeddedSchema returns the JSON Schema used when no schema file is configured.
func EmbeddedSchema() string {
	return embeddedSchema
}

var compileEmbedded = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("tasks.schema.json", embeddedSchema)
})

// loadSchema compiles the schema at path, or the embedded schema if path is empty.
func loadSchema(path string) (*jsonschema.Schema, error) {
	if path == "" {
		schema, err := compileEmbedded()
		if err != nil {
			return nil, fmt.Errorf("compile embedded schema: %w", err)
		}
		return schema, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", absPath, err)
	}
	return schema, nil
}

// schemaError converts a schema validation failure into a MalformedStoreError
// pointing at the first offending element.
func schemaError(location string, err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &task.MalformedStoreError{Location: location, Err: err}
	}

	leaves := collectLeaves(ve, nil)
	first := leaves[0]
	cause := errors.New(first.Message)
	if len(leaves) > 1 {
		cause = fmt.Errorf("%s (and %d more)", first.Message, len(leaves)-1)
	}
	return &task.MalformedStoreError{
		Location: location,
		Path:     instancePath(first.InstanceLocation),
		Err:      cause,
	}
}

// instancePath turns a JSON Pointer such as "/2/status" into "[2].status".
func instancePath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		if token == "" {
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}

func collectLeaves(err *jsonschema.ValidationError, leaves []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return append(leaves, err)
	}
	for _, cause := range err.Causes {
		leaves = collectLeaves(cause, leaves)
	}
	return leaves
}

// checkUniqueIDs reports the first repeated id as a MalformedStoreError.
func checkUniqueIDs(location string, tasks []task.Task) error {
	seen := make(map[int]bool, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			return &task.MalformedStoreError{
				Location: location,
				Path:     fmt.Sprintf("[%d].id", i),
				Err:      fmt.Errorf("duplicate id %d", t.ID),
			}
		}
		seen[t.ID] = true
	}
	return nil
}
