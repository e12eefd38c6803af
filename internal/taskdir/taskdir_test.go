package taskdir

import (
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	tests := []struct {
		name    string
		workDir string
		got     func(string) string
		want    string
	}{
		{"store in cwd", "", StorePath, filepath.Join(".taskflow", "tasks.json")},
		{"store in dot", ".", StorePath, filepath.Join(".taskflow", "tasks.json")},
		{"store in project", "/work/proj", StorePath, filepath.Join("/work/proj", ".taskflow", "tasks.json")},
		{"sqlite in project", "/work/proj", SQLitePath, filepath.Join("/work/proj", ".taskflow", "tasks.db")},
		{"schema in project", "/work/proj", SchemaPath, filepath.Join("/work/proj", ".taskflow", "tasks.schema.json")},
		{"dir in cwd", "", DirPath, ".taskflow"},
		{"dir in project", "/work/proj", DirPath, filepath.Join("/work/proj", ".taskflow")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(tt.workDir); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
