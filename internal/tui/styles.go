package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	header   lipgloss.Style
	current  lipgloss.Style
	status   lipgloss.Style
	err      lipgloss.Style
	prompt   lipgloss.Style
	border   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		current:  lipgloss.NewStyle().Bold(true).Underline(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		border:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
