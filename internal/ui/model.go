// ABOUTME: Bubbletea model for the channel monitor
// ABOUTME: Lists playing channels with progress, buffer and output properties
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	panStep    = 0.1
	pitchStep  = 0.05
)

// ChannelStatus is a snapshot of one playing channel
type ChannelStatus struct {
	ID       string
	Name     string
	State    string
	Phase    string
	Current  time.Duration
	Total    time.Duration
	Volume   float64
	Pitch    float64
	Panning  float64
	Buffered time.Duration
	Rate     int
	Channels int
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Backend  string
	InUse    int
	Max      int
	Channels []ChannelStatus
	Err      error
}

// Model represents the TUI state
type Model struct {
	title    string
	backend  string
	inUse    int
	max      int
	channels []ChannelStatus
	selected int
	lastErr  error

	controls *Controls
	keys     KeyMap
	help     help.Model
	progress progress.Model

	width  int
	height int
}

// NewModel creates a new TUI model. controls may be nil in tests.
func NewModel(title string, controls *Controls) Model {
	return Model{
		title:    title,
		controls: controls,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithoutPercentage(), progress.WithDefaultGradient()),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(10, msg.Width/3)
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderChannels())
	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(stoppedStyle.Render("error: " + m.lastErr.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return frameStyle.Width(max(20, m.width-2)).Render(b.String())
}

func (m Model) renderHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(m.title),
		dimStyle.Render(fmt.Sprintf("  output: %s  channels: %d/%d", m.backend, m.inUse, m.max)),
	)
}

func (m Model) renderChannels() string {
	if len(m.channels) == 0 {
		return dimStyle.Render("No channels playing")
	}

	rows := make([]string, 0, len(m.channels))
	for i, ch := range m.channels {
		rows = append(rows, m.renderChannel(ch, i == m.selected))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderChannel(ch ChannelStatus, selected bool) string {
	name := truncate(ch.Name, 32)
	if selected {
		name = selectedStyle.Render(name)
	}

	line1 := fmt.Sprintf("%s %s  %s %s",
		name,
		stateStyle(ch.State).Render(ch.State),
		dimStyle.Render(fmt.Sprintf("%dHz %s", ch.Rate, channelName(ch.Channels))),
		dimStyle.Render("["+ch.Phase+"]"),
	)

	line2 := fmt.Sprintf("  %s %s %s",
		formatDuration(ch.Current),
		m.progress.ViewAs(ratio(ch.Current, ch.Total)),
		formatDuration(ch.Total),
	)

	line3 := dimStyle.Render(fmt.Sprintf("  vol %3.0f%%  pan %+.1f  pitch %.2fx  buffer %dms",
		ch.Volume*100, ch.Panning, ch.Pitch, ch.Buffered.Milliseconds()))

	return line1 + "\n" + line2 + "\n" + line3
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.controls != nil {
			select {
			case m.controls.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.channels)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.PlayPause):
		m.send(Command{Kind: CmdTogglePause})
	case key.Matches(msg, m.keys.Stop):
		m.send(Command{Kind: CmdStop})
	case key.Matches(msg, m.keys.StopAll):
		m.send(Command{Kind: CmdStopAll})
	case key.Matches(msg, m.keys.SeekForward):
		m.send(Command{Kind: CmdSeek, Seek: seekStep})
	case key.Matches(msg, m.keys.SeekBackward):
		m.send(Command{Kind: CmdSeek, Seek: -seekStep})
	case key.Matches(msg, m.keys.VolumeUp):
		m.send(Command{Kind: CmdVolume, Delta: volumeStep})
	case key.Matches(msg, m.keys.VolumeDown):
		m.send(Command{Kind: CmdVolume, Delta: -volumeStep})
	case key.Matches(msg, m.keys.PanLeft):
		m.send(Command{Kind: CmdPan, Delta: -panStep})
	case key.Matches(msg, m.keys.PanRight):
		m.send(Command{Kind: CmdPan, Delta: panStep})
	case key.Matches(msg, m.keys.PitchUp):
		m.send(Command{Kind: CmdPitch, Delta: pitchStep})
	case key.Matches(msg, m.keys.PitchDown):
		m.send(Command{Kind: CmdPitch, Delta: -pitchStep})
	}

	return m, nil
}

// send targets the selected channel; commands are dropped when the player lags
func (m Model) send(cmd Command) {
	if m.controls == nil {
		return
	}
	if cmd.Kind != CmdStopAll {
		if len(m.channels) == 0 {
			return
		}
		cmd.ID = m.channels[m.selected].ID
	}
	select {
	case m.controls.Commands <- cmd:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Backend != "" {
		m.backend = msg.Backend
	}
	m.inUse = msg.InUse
	m.max = msg.Max
	if msg.Err != nil {
		m.lastErr = msg.Err
	}

	// Keep the selection on the same channel when the list changes
	var selectedID string
	if m.selected < len(m.channels) {
		selectedID = m.channels[m.selected].ID
	}
	m.channels = msg.Channels
	m.selected = 0
	for i, ch := range m.channels {
		if ch.ID == selectedID {
			m.selected = i
			break
		}
	}
}

// Utility functions
func ratio(current, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return min(1, max(0, float64(current)/float64(total)))
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
