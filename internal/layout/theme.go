package layout

import "github.com/charmbracelet/lipgloss"

// Theme maps text categories to lipgloss styles.
type Theme struct {
	Plain   lipgloss.Style
	Warning lipgloss.Style
	Healthy lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultTheme renders warnings red, healthy names green and the rest grey.
var DefaultTheme = Theme{
	Plain:   lipgloss.NewStyle(),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	Healthy: lipgloss.NewStyle().Foreground(lipgloss.Color("#3F9142")),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
}

// Render applies the style registered for s to text.
func (t Theme) Render(s Style, text string) string {
	switch s {
	case StyleWarning:
		return t.Warning.Render(text)
	case StyleHealthy:
		return t.Healthy.Render(text)
	case StyleMuted:
		return t.Muted.Render(text)
	default:
		return t.Plain.Render(text)
	}
}
