package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskflow/internal/task"
)

type fakeLister struct {
	tasks   []task.Task
	err     error
	calls   int
	filters []task.Filter
}

func (f *fakeLister) List(location string, filter task.Filter) ([]task.Task, error) {
	f.calls++
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var out []task.Task
	for _, t := range f.tasks {
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(t.Priority) != strings.ToUpper(filter.Priority) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Buy milk", Description: "2%", Status: task.StatusToDo, Priority: task.PriorityMedium},
		{ID: 2, Title: "Write report", Status: task.StatusInProgress, Priority: task.PriorityHigh},
		{ID: 3, Title: "Call mom", Status: task.StatusDone, Priority: task.PriorityLow},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardInitLoadsTasks(t *testing.T) {
	lister := &fakeLister{tasks: sampleTasks()}
	m := newBoardModel(lister, "tasks.json", task.Filter{})

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should schedule a refresh tick")
	}
	if lister.calls != 1 {
		t.Errorf("List calls = %d, want 1", lister.calls)
	}

	view := m.View()
	for _, want := range []string{"To Do (1)", "In Progress (1)", "Done (1)", "Buy milk", "Write report", "Call mom", "tasks.json"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestBoardStatusKeys(t *testing.T) {
	tests := []struct {
		key        string
		wantStatus string
		wantHeader string
	}{
		{"1", "To Do", "To Do (1)"},
		{"2", "In Progress", "In Progress (1)"},
		{"3", "Done", "Done (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			lister := &fakeLister{tasks: sampleTasks()}
			m := newBoardModel(lister, "tasks.json", task.Filter{})
			m.Init()

			m.Update(key(tt.key))
			if m.filter.Status != tt.wantStatus {
				t.Errorf("filter.Status = %q, want %q", m.filter.Status, tt.wantStatus)
			}
			view := m.View()
			if !strings.Contains(view, tt.wantHeader) {
				t.Errorf("View() missing %q:\n%s", tt.wantHeader, view)
			}
			if !strings.Contains(view, "status="+tt.wantStatus) {
				t.Errorf("View() missing filter line:\n%s", view)
			}

			m.Update(key("0"))
			if m.filter != (task.Filter{}) {
				t.Errorf("filter after clear = %+v", m.filter)
			}
		})
	}
}

func TestBoardPriorityCycle(t *testing.T) {
	lister := &fakeLister{tasks: sampleTasks()}
	m := newBoardModel(lister, "tasks.json", task.Filter{})
	m.Init()

	want := []string{"LOW", "MEDIUM", "HIGH", ""}
	for _, w := range want {
		m.Update(key("p"))
		if m.filter.Priority != w {
			t.Fatalf("filter.Priority = %q, want %q", m.filter.Priority, w)
		}
	}
}

func TestNextPriority(t *testing.T) {
	tests := map[string]string{
		"":       "LOW",
		"LOW":    "MEDIUM",
		"medium": "HIGH",
		"HIGH":   "",
		"bogus":  "",
	}
	for in, want := range tests {
		if got := nextPriority(in); got != want {
			t.Errorf("nextPriority(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBoardShowsLoadError(t *testing.T) {
	lister := &fakeLister{err: errors.New("malformed task store tasks.json: bad")}
	m := newBoardModel(lister, "tasks.json", task.Filter{})
	m.Init()

	view := m.View()
	if !strings.Contains(view, "Error loading tasks") || !strings.Contains(view, "malformed task store") {
		t.Errorf("View() should show the load error:\n%s", view)
	}
}

func TestBoardQuitAndHelp(t *testing.T) {
	m := newBoardModel(&fakeLister{}, "tasks.json", task.Filter{})
	m.Init()

	m.Update(key("h"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	m.Update(key("?"))
	if m.showHelp {
		t.Error("help screen not toggled off")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBoardTickRefreshes(t *testing.T) {
	lister := &fakeLister{tasks: sampleTasks()}
	m := newBoardModel(lister, "tasks.json", task.Filter{}, WithRefreshInterval(time.Minute))
	m.Init()

	lister.tasks = append(lister.tasks, task.Task{ID: 4, Title: "New one", Status: task.StatusToDo, Priority: task.PriorityLow})
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !strings.Contains(m.View(), "New one") {
		t.Error("tick did not reload tasks")
	}
	if !strings.Contains(m.View(), "1m0s") {
		t.Error("footer should show the refresh interval")
	}
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		total, columns, want int
	}{
		{0, 3, 32},
		{60, 3, 24},
		{120, 3, 38},
		{300, 1, 40},
	}
	for _, tt := range tests {
		if got := columnWidth(tt.total, tt.columns); got != tt.want {
			t.Errorf("columnWidth(%d, %d) = %d, want %d", tt.total, tt.columns, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("naïve description here", 10); got != "naïve d..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a TTY")
	}
}
