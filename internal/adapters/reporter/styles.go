package reporter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	step    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	command lipgloss.Style
}

func newStyles(profile termenv.Profile) styles {
	if profile == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return styles{step: plain, success: plain, warning: plain, info: plain, command: plain}
	}
	return styles{
		step:    lipgloss.NewStyle().Faint(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		command: lipgloss.NewStyle().Bold(true),
	}
}
