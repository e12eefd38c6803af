package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nibzard/taskflow/internal/task"
)

// Backend names a storage backend.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendJSON

// Options configures a store backend.
type Options struct {
	// SchemaPath overrides the embedded JSON Schema (json backend only).
	SchemaPath string
}

// Factory creates a store from options.
type Factory func(opts Options) task.Store

// Registry maps backend names to factories.
var Registry = map[Backend]Factory{
	BackendJSON:   func(opts Options) task.Store { return NewJSONStore(opts) },
	BackendSQLite: func(opts Options) task.Store { return NewSQLiteStore(opts) },
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// ParseBackend normalizes a backend name. An empty name selects DefaultBackend.
func ParseBackend(name string) (Backend, error) {
	normalized := Backend(strings.ToLower(strings.TrimSpace(name)))
	if normalized == "" {
		return DefaultBackend, nil
	}
	if _, ok := Registry[normalized]; !ok {
		return "", fmt.Errorf("unknown store backend %q, must be one of: %s", name, strings.Join(Backends(), ", "))
	}
	return normalized, nil
}

// Open returns the store for backend.
func Open(backend string, opts Options) (task.Store, error) {
	name, err := ParseBackend(backend)
	if err != nil {
		return nil, err
	}
	return Registry[name](opts), nil
}
