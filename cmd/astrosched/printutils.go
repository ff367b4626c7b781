package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/astrosched"
	"github.com/charmbracelet/lipgloss"
)

type color string

const (
	colorRed    color = "\033[31m"
	colorGreen  color = "\033[32m"
	colorYellow color = "\033[33m"
	colorPurple color = "\033[35m"
	colorCyan   color = "\033[36m"
	colorReset  color = "\033[0m"
)

var (
	faintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	timeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	completedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	priorityStyles = map[astrosched.Priority]lipgloss.Style{
		astrosched.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		astrosched.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		astrosched.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

func colorize(c color, s string) string {
	return string(c) + s + string(colorReset)
}

func formatForDisplay(t astrosched.Task, format string) string {
	line := fmt.Sprintf("%s %s %s",
		timeStyle.Render(fmt.Sprintf("%s - %s:", t.Start.Format(format), t.End.Format(format))),
		descriptionStyle.Render(t.Description),
		priorityStyles[t.Priority].Render("["+t.Priority.String()+"]"),
	)
	if t.Completed {
		line += completedStyle.Render(" (Completed)")
	}
	return line
}

func renderTasks(tasks []astrosched.Task, format string) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, formatForDisplay(t, format))
	}
	return strings.Join(lines, "\n")
}
