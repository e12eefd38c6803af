package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskflow/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginRight(1)

	priorityColors = map[task.Priority]lipgloss.Color{
		task.PriorityLow:    lipgloss.Color("42"),
		task.PriorityMedium: lipgloss.Color("214"),
		task.PriorityHigh:   lipgloss.Color("196"),
	}
)

func priorityStyle(p task.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(priorityColors[p])
}
