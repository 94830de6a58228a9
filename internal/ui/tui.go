// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the command channel back to the player
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CommandKind identifies a user action on a channel
type CommandKind int

const (
	CmdTogglePause CommandKind = iota
	CmdStop
	CmdStopAll
	CmdSeek
	CmdVolume
	CmdPan
	CmdPitch
)

// Command asks the player to act on the channel with ID
type Command struct {
	Kind  CommandKind
	ID    string
	Delta float64       // Volume, pan or pitch change
	Seek  time.Duration // Seek offset relative to the current position
}

// QuitMsg signals that the user quit the TUI
type QuitMsg struct{}

// Controls carries commands from the TUI to the player
type Controls struct {
	Commands chan Command
	Quit     chan QuitMsg
}

// NewControls creates a new control handler
func NewControls() *Controls {
	return &Controls{
		Commands: make(chan Command, 16),
		Quit:     make(chan QuitMsg, 1),
	}
}

// Run creates the TUI program; the caller starts it with p.Run
func Run(title string, controls *Controls) *tea.Program {
	return tea.NewProgram(NewModel(title, controls), tea.WithAltScreen())
}
