package report

import "github.com/charmbracelet/lipgloss"

// Terminal styles for run output. Lipgloss degrades colors automatically
// based on terminal capabilities.
var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleError  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleOK     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// render applies a style when colors are enabled, otherwise returns the text
// unmodified.
func render(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
