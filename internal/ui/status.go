package ui

import "github.com/charmbracelet/lipgloss"

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Status renders a dependency status label in its color.
func Status(s string) string {
	switch s {
	case "OK", "Up to date":
		return okStyle.Render(s)
	case "Fetched", "Added", "Removed", "UPDATED", "Pinned":
		return changedStyle.Render(s)
	case "FAILED", "NOT FOUND", "MISSING":
		return failStyle.Render(s)
	default:
		return s
	}
}
