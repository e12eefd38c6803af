// Package ui provides the interactive task board.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskflow/internal/task"
)

// ErrNotTTY is returned when the board is started without a terminal.
var ErrNotTTY = errors.New("board requires a TTY")

// Lister loads tasks for the board.
type Lister interface {
	List(location string, filter task.Filter) ([]task.Task, error)
}

// BoardOption configures the board.
type BoardOption func(*boardModel)

// WithRefreshInterval sets how often the board reloads the store.
func WithRefreshInterval(d time.Duration) BoardOption {
	return func(m *boardModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// RunBoard shows the tasks at location in one column per status until the
// user quits. The filter is validated before the terminal is taken over.
func RunBoard(ctx context.Context, lister Lister, location string, filter task.Filter, opts ...BoardOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	if _, err := lister.List(location, filter); err != nil {
		return err
	}

	model := newBoardModel(lister, location, filter, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type boardModel struct {
	lister       Lister
	location     string
	filter       task.Filter
	tasks        []task.Task
	loaded       bool
	loadErr      error
	lastLoad     time.Time
	tickInterval time.Duration
	width        int
	showHelp     bool
}

type tickMsg time.Time

func newBoardModel(lister Lister, location string, filter task.Filter, opts ...BoardOption) *boardModel {
	m := &boardModel{
		lister:       lister,
		location:     location,
		filter:       filter,
		tickInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *boardModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.setStatus(task.StatusToDo)
		case "2":
			m.setStatus(task.StatusInProgress)
		case "3":
			m.setStatus(task.StatusDone)
		case "0":
			m.filter = task.Filter{}
			m.refresh()
		case "p":
			m.filter.Priority = nextPriority(m.filter.Priority)
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *boardModel) setStatus(status task.Status) {
	m.filter.Status = string(status)
	m.refresh()
}

// nextPriority cycles all -> LOW -> MEDIUM -> HIGH -> all.
func nextPriority(current string) string {
	priorities := task.Priorities()
	if current == "" {
		return string(priorities[0])
	}
	for i, p := range priorities {
		if strings.EqualFold(string(p), current) {
			if i+1 < len(priorities) {
				return string(priorities[i+1])
			}
			return ""
		}
	}
	return ""
}

func (m *boardModel) refresh() {
	tasks, err := m.lister.List(m.location, m.filter)
	m.loaded = true
	m.lastLoad = time.Now()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskflow board"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.location))
	b.WriteString("\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if line := filterLine(m.filter); line != "" {
		b.WriteString(line + "\n\n")
	}

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Error loading tasks:"))
		b.WriteString("\n  " + m.loadErr.Error() + "\n\n")
	case !m.loaded:
		b.WriteString("Loading...\n\n")
	default:
		b.WriteString(m.columns())
		b.WriteString("\n\n")
	}

	writeFooter(&b, m.tickInterval)
	return b.String()
}

// columns renders one column per status, restricted to the status filter
// when one is set.
func (m *boardModel) columns() string {
	statuses := task.Statuses()
	if m.filter.Status != "" {
		statuses = []task.Status{task.Status(m.filter.Status)}
	}

	width := columnWidth(m.width, len(statuses))
	rendered := make([]string, 0, len(statuses))
	for _, status := range statuses {
		var cards []string
		for _, t := range m.tasks {
			if t.Status == status {
				cards = append(cards, renderCard(t, width-4))
			}
		}
		header := headerStyle.Render(fmt.Sprintf("%s (%d)", status, len(cards)))
		body := mutedStyle.Render("No tasks")
		if len(cards) > 0 {
			body = strings.Join(cards, "\n")
		}
		column := columnStyle.Width(width).Render(header + "\n\n" + body)
		rendered = append(rendered, column)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func columnWidth(total, columns int) int {
	const minWidth, maxWidth = 24, 40
	if total <= 0 || columns == 0 {
		return 32
	}
	w := total/columns - 2
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}

func renderCard(t task.Task, width int) string {
	line := fmt.Sprintf("[%d] %s %s", t.ID, t.Title, priorityStyle(t.Priority).Render(string(t.Priority)))
	if t.Description == "" {
		return line
	}
	return line + "\n" + mutedStyle.Render("  "+truncate(t.Description, width-2))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func filterLine(f task.Filter) string {
	var parts []string
	if f.Status != "" {
		parts = append(parts, "status="+f.Status)
	}
	if f.Priority != "" {
		parts = append(parts, "priority="+strings.ToUpper(f.Priority))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("Filter: %s (0 to clear)", strings.Join(parts, " "))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc, ctrl+c  Quit\n")
	b.WriteString("  r, F5           Refresh\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  1               Show To Do\n")
	b.WriteString("  2               Show In Progress\n")
	b.WriteString("  3               Show Done\n")
	b.WriteString("  p               Cycle priority filter\n")
	b.WriteString("  0               Clear filters\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)))
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
