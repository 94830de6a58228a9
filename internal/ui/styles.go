// ABOUTME: Lipgloss styles for the channel monitor
// ABOUTME: Colors follow playback state
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7571F9")
	colorMuted  = lipgloss.Color("#606060")
	colorText   = lipgloss.Color("#E0E0E0")
	colorGood   = lipgloss.Color("#50FA7B")
	colorWarn   = lipgloss.Color("#F1FA8C")
	colorBad    = lipgloss.Color("#FF5555")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(lipgloss.Color("#3C3C5C"))

	dimStyle = lipgloss.NewStyle().Foreground(colorMuted)

	playingStyle = lipgloss.NewStyle().Foreground(colorGood)
	pausedStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	stoppedStyle = lipgloss.NewStyle().Foreground(colorBad)
)

func stateStyle(state string) lipgloss.Style {
	switch state {
	case "playing":
		return playingStyle
	case "paused":
		return pausedStyle
	default:
		return stoppedStyle
	}
}
