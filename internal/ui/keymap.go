// ABOUTME: Key bindings for the channel monitor
// ABOUTME: Implements help.KeyMap for the bubbles help view
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the monitor
type KeyMap struct {
	// Selection
	Up   key.Binding
	Down key.Binding

	// Playback
	PlayPause key.Binding
	Stop      key.Binding
	StopAll   key.Binding

	// Seek
	SeekForward  key.Binding
	SeekBackward key.Binding

	// Output properties
	VolumeUp   key.Binding
	VolumeDown key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	PitchUp    key.Binding
	PitchDown  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "prev channel"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "next channel"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		StopAll: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "stop all"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("f", "right"),
			key.WithHelp("f", "+5s"),
		),
		SeekBackward: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "-5s"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "vol+"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "vol-"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "pan right"),
		),
		PitchUp: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "pitch+"),
		),
		PitchDown: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "pitch-"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Stop, k.SeekForward, k.VolumeUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PlayPause, k.Stop, k.StopAll},
		{k.SeekForward, k.SeekBackward},
		{k.VolumeUp, k.VolumeDown, k.PanLeft, k.PanRight, k.PitchUp, k.PitchDown},
		{k.Help, k.Quit},
	}
}
