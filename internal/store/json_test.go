package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/taskflow/internal/task"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestJSONStoreLoadEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(Options{})

	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "zero length", content: strPtr("")},
		{name: "whitespace only", content: strPtr(" \n\t\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if tt.content != nil {
				writeFile(t, path, *tt.content)
			}
			tasks, err := s.Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tasks == nil || len(tasks) != 0 {
				t.Errorf("Load() = %#v, want empty non-nil slice", tasks)
			}
		})
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	s := NewJSONStore(Options{})

	want := []task.Task{
		{ID: 3, Title: "Café <b>&</b>", Description: "naïve", Status: task.StatusInProgress, Priority: task.PriorityHigh},
		{ID: 1, Title: "Buy milk", Description: "", Status: task.StatusToDo, Priority: task.PriorityMedium},
	}
	if err := s.Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() returned %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestJSONStoreSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := NewJSONStore(Options{})

	tasks := []task.Task{
		{ID: 1, Title: "Café & <tea>", Description: "", Status: task.StatusToDo, Priority: task.PriorityMedium},
	}
	if err := s.Save(path, tasks); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "id": 1,
    "title": "Café & <tea>",
    "description": "",
    "status": "To Do",
    "priority": "MEDIUM"
  }
]
`
	if string(data) != want {
		t.Errorf("file content:\n%s\nwant:\n%s", data, want)
	}
}

func TestJSONStoreSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := NewJSONStore(Options{})

	if err := s.Save(path, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("file content = %q, want %q", data, "[]\n")
	}
}

func TestJSONStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	s := NewJSONStore(Options{})

	for i := 0; i < 3; i++ {
		if err := s.Save(path, []task.Task{{ID: 1, Title: "A", Status: task.StatusDone, Priority: task.PriorityLow}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory entries = %v, want [tasks.json]", names)
	}
}

func TestJSONStoreLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(Options{})

	tests := []struct {
		name     string
		content  string
		wantPath string
	}{
		{name: "syntax error", content: `[{"id": 1,`},
		{name: "not an array", content: `{"id": 1}`},
		{
			name:     "bad status",
			content:  `[{"id":1,"title":"A","description":"","status":"To Do","priority":"LOW"},{"id":2,"title":"B","description":"","status":"Blocked","priority":"LOW"}]`,
			wantPath: "[1].status",
		},
		{
			name:    "lowercase priority",
			content: `[{"id":1,"title":"A","description":"","status":"To Do","priority":"low"}]`,
		},
		{
			name:    "missing field",
			content: `[{"id":1,"title":"A","status":"To Do","priority":"LOW"}]`,
		},
		{
			name:    "extra field",
			content: `[{"id":1,"title":"A","description":"","status":"To Do","priority":"LOW","due":"tomorrow"}]`,
		},
		{
			name:    "string id",
			content: `[{"id":"1","title":"A","description":"","status":"To Do","priority":"LOW"}]`,
		},
		{
			name:     "duplicate id",
			content:  `[{"id":1,"title":"A","description":"","status":"To Do","priority":"LOW"},{"id":1,"title":"B","description":"","status":"Done","priority":"HIGH"}]`,
			wantPath: "[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			writeFile(t, path, tt.content)

			_, err := s.Load(path)
			if !errors.Is(err, task.ErrMalformedStore) {
				t.Fatalf("Load() error = %v, want ErrMalformedStore", err)
			}
			var me *task.MalformedStoreError
			if !errors.As(err, &me) {
				t.Fatalf("Load() error type = %T", err)
			}
			if me.Location != path {
				t.Errorf("Location = %q, want %q", me.Location, path)
			}
			if tt.wantPath != "" && me.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", me.Path, tt.wantPath)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.content {
				t.Error("malformed store was modified")
			}
		})
	}
}

func TestJSONStoreSchemaOverride(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "strict.schema.json")
	writeFile(t, schemaPath, `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "maxItems": 1
}`)
	path := filepath.Join(dir, "tasks.json")
	writeFile(t, path, `[{"id":1,"title":"A","description":"","status":"To Do","priority":"LOW"},{"id":2,"title":"B","description":"","status":"To Do","priority":"LOW"}]`)

	_, err := NewJSONStore(Options{SchemaPath: schemaPath}).Load(path)
	if !errors.Is(err, task.ErrMalformedStore) {
		t.Fatalf("Load() error = %v, want ErrMalformedStore", err)
	}

	if _, err := NewJSONStore(Options{}).Load(path); err != nil {
		t.Fatalf("Load() with embedded schema error = %v", err)
	}
}

func TestJSONStoreSchemaErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	writeFile(t, path, "[]")

	badSchema := filepath.Join(dir, "bad.schema.json")
	writeFile(t, badSchema, "{not json")

	tests := []struct {
		name       string
		schemaPath string
		wantMsg    string
	}{
		{"missing schema", filepath.Join(dir, "missing.json"), "schema file not found"},
		{"invalid schema", badSchema, "invalid schema file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSONStore(Options{SchemaPath: tt.schemaPath}).Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if errors.Is(err, task.ErrMalformedStore) {
				t.Errorf("schema problems should not be reported as a malformed store: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestEmbeddedSchemaCompiles(t *testing.T) {
	if _, err := loadSchema(""); err != nil {
		t.Fatalf("embedded schema: %v", err)
	}
	if !strings.Contains(EmbeddedSchema(), `"In Progress"`) {
		t.Error("embedded schema is missing the status vocabulary")
	}
}

func strPtr(s string) *string { return &s }

func TestInstancePath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"/2/status", "[2].status"},
		{"#/1/title", "[1].title"},
		{"/meta/a~1b/c~0d", "meta.a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := instancePath(tt.ptr); got != tt.want {
				t.Errorf("instancePath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
