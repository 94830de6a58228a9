// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates the engine, the output backend, playbacks and the TUI
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Resonate-Protocol/soundstream/internal/config"
	"github.com/Resonate-Protocol/soundstream/internal/ui"
	"github.com/Resonate-Protocol/soundstream/internal/version"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/decode"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
	"github.com/Resonate-Protocol/soundstream/pkg/stream"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const (
	statusInterval = 100 * time.Millisecond
	logInterval    = 5 * time.Second
)

// Config holds player configuration
type Config struct {
	Files    []string
	Settings config.Config
	UseTUI   bool
	Logger   *slog.Logger
	Backend  output.Backend // Overrides Settings.Output when set
}

// Stats counts playback outcomes
type Stats struct {
	Started   int
	Finished  int
	Cancelled int
	Failed    int
}

// Player represents the main player application
type Player struct {
	config  Config
	log     *slog.Logger
	engine  *stream.Engine
	backend output.Backend

	controls *ui.Controls
	tuiProg  *tea.Program

	mu      sync.Mutex
	handles []*stream.Handle
	stats   Stats
	lastErr error
}

// New creates a new player with its backend and engine
func New(cfg Config) (*Player, error) {
	if len(cfg.Files) == 0 {
		return nil, errors.New("no files to play")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	backend := cfg.Backend
	if backend == nil {
		b, err := output.New(cfg.Settings.Output, cfg.Settings.OutputConfig(cfg.Logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create output: %w", err)
		}
		backend = b
	}

	p := &Player{
		config:  cfg,
		log:     cfg.Logger,
		backend: backend,
	}

	engine, err := stream.NewEngine(stream.Config{
		Backend:     backend,
		MaxChannels: cfg.Settings.MaxChannels,
		Logger:      cfg.Logger,
		OnError:     p.onError,
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	p.engine = engine

	return p, nil
}

// Engine returns the player's engine
func (p *Player) Engine() *stream.Engine {
	return p.engine
}

// Stats returns playback counters
func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Run plays every file and blocks until they end, the user quits or ctx is
// done. It returns the playback failures joined together.
func (p *Player) Run(ctx context.Context) error {
	defer func() {
		if err := p.engine.Close(); err != nil {
			p.log.Error("engine close failed", "err", err)
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.startAll(runCtx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		p.waitPlaybacks(gctx)
		cancel()
		return nil
	})

	if p.config.UseTUI {
		p.controls = ui.NewControls()
		p.tuiProg = ui.Run(fmt.Sprintf("%s %s", version.Product, version.Version), p.controls)

		g.Go(func() error {
			defer cancel()
			if _, err := p.tuiProg.Run(); err != nil {
				return fmt.Errorf("tui failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			p.tuiProg.Quit()
			return nil
		})
		g.Go(func() error {
			p.statusLoop(gctx)
			return nil
		})
		g.Go(func() error {
			p.handleControls(gctx)
			return nil
		})
	} else {
		g.Go(func() error {
			p.logLoop(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	p.engine.StopAll()
	return p.playbackErrors()
}

// startAll opens each file and starts its playback
func (p *Player) startAll(ctx context.Context) error {
	s := p.config.Settings
	for _, path := range p.config.Files {
		src, err := decode.OpenFile(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		name := filepath.Base(path)
		h, err := p.engine.PlayStream(ctx, name, src, stream.PlayParams{
			Times:      s.Repeat,
			BufferTime: s.Buffer,
			Volume:     s.Volume,
			OnFinish:   func() { p.count(func(st *Stats) { st.Finished++ }) },
			OnCancel:   func() { p.count(func(st *Stats) { st.Cancelled++ }) },
		}, true)
		if err != nil {
			return fmt.Errorf("failed to play %s: %w", path, err)
		}

		p.log.Info("Playing", "file", name, "channel", h.ChannelID(), "rate", h.Rate(),
			"channels", h.Channels(), "length", h.Total())

		p.mu.Lock()
		p.handles = append(p.handles, h)
		p.stats.Started++
		p.mu.Unlock()
	}
	return nil
}

func (p *Player) count(fn func(*Stats)) {
	p.mu.Lock()
	fn(&p.stats)
	p.mu.Unlock()
}

func (p *Player) onError(name string, err error) {
	p.mu.Lock()
	p.stats.Failed++
	p.lastErr = fmt.Errorf("%s: %w", name, err)
	p.mu.Unlock()
}

// waitPlaybacks returns when every playback ended or ctx is done
func (p *Player) waitPlaybacks(ctx context.Context) {
	p.mu.Lock()
	handles := append([]*stream.Handle(nil), p.handles...)
	p.mu.Unlock()

	for _, h := range handles {
		select {
		case <-h.Done():
		case <-ctx.Done():
			return
		}
	}
}

func (p *Player) playbackErrors() error {
	p.mu.Lock()
	handles := append([]*stream.Handle(nil), p.handles...)
	p.mu.Unlock()

	var errs []error
	for _, h := range handles {
		<-h.Done()
		if err := h.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// statusLoop pushes channel snapshots to the TUI
func (p *Player) statusLoop(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tuiProg.Send(p.Status())
		}
	}
}

// logLoop periodically logs channel state when the TUI is off
func (p *Player) logLoop(ctx context.Context) {
	ticker := time.NewTicker(logInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, ch := range p.Status().Channels {
				p.log.Info("Channel status", "name", ch.Name, "state", ch.State, "phase", ch.Phase,
					"position", ch.Current.Round(time.Second), "buffered", ch.Buffered)
			}
		}
	}
}

// Status builds a snapshot of the active playbacks
func (p *Player) Status() ui.StatusMsg {
	active := p.engine.Active()
	msg := ui.StatusMsg{
		Backend:  p.backend.Name(),
		InUse:    p.engine.Channels().InUse(),
		Max:      p.engine.Channels().Max(),
		Channels: make([]ui.ChannelStatus, 0, len(active)),
	}

	p.mu.Lock()
	msg.Err = p.lastErr
	p.mu.Unlock()

	for _, h := range active {
		msg.Channels = append(msg.Channels, channelStatus(h))
	}
	return msg
}

func channelStatus(h *stream.Handle) ui.ChannelStatus {
	frames := int64(0)
	if h.Channels() > 0 {
		frames = int64(h.Buffered() / h.Channels())
	}
	return ui.ChannelStatus{
		ID:       h.ID(),
		Name:     h.Name(),
		State:    h.State().String(),
		Phase:    h.Phase().String(),
		Current:  h.Current(),
		Total:    h.Total(),
		Volume:   h.Volume(),
		Pitch:    h.Pitch(),
		Panning:  h.Panning(),
		Buffered: time.Duration(frames) * time.Second / time.Duration(max(1, h.Rate())),
		Rate:     h.Rate(),
		Channels: h.Channels(),
	}
}

// handleControls applies TUI commands to the playbacks
func (p *Player) handleControls(ctx context.Context) {
	for {
		select {
		case cmd := <-p.controls.Commands:
			p.apply(cmd)
		case <-p.controls.Quit:
			p.log.Info("Quit requested")
		case <-ctx.Done():
			return
		}
	}
}

// apply runs one command against the matching playback
func (p *Player) apply(cmd ui.Command) {
	if cmd.Kind == ui.CmdStopAll {
		p.engine.StopAll()
		return
	}

	h := p.find(cmd.ID)
	if h == nil {
		return
	}

	switch cmd.Kind {
	case ui.CmdTogglePause:
		if h.State() == stream.StatePaused {
			h.Resume()
		} else {
			h.Pause()
		}
	case ui.CmdStop:
		h.Stop()
	case ui.CmdSeek:
		target := max(0, h.Current()+cmd.Seek)
		if total := h.Total(); total > 0 && target > total {
			target = total
		}
		if err := h.SetCurrent(target); err != nil {
			p.log.Warn("Seek failed", "name", h.Name(), "err", err)
		}
	case ui.CmdVolume:
		h.SetVolume(max(0, h.Volume()+cmd.Delta))
	case ui.CmdPan:
		h.SetPanning(h.Panning() + cmd.Delta)
	case ui.CmdPitch:
		if pitch := h.Pitch() + cmd.Delta; pitch > 0 {
			h.SetPitch(pitch)
		}
	}
}

func (p *Player) find(id string) *stream.Handle {
	for _, h := range p.engine.Active() {
		if h.ID() == id {
			return h
		}
	}
	return nil
}
