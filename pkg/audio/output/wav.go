// ABOUTME: Render-to-file output backend
// ABOUTME: Writes each channel to its own WAV file on a realtime or accelerated clock
package output

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/encode"
)

// WAV renders outputs into WAV files. The first output writes to
// Config.Path, later ones to Path with a -N suffix before the extension.
type WAV struct {
	cfg    Config
	log    *slog.Logger
	open   tracker
	count  atomic.Int64
	closed atomic.Bool

	mu    sync.Mutex
	paths []string
}

// NewWAV validates the file format; files are created per output
func NewWAV(cfg Config) (*WAV, error) {
	cfg.applyDefaults()
	switch cfg.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", cfg.BitDepth)
	}
	return &WAV{cfg: cfg, log: cfg.Logger}, nil
}

func (w *WAV) Name() string { return "wav" }

// Paths returns the files created so far
func (w *WAV) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.paths...)
}

func (w *WAV) pathFor(n int64) string {
	if n == 0 {
		return w.cfg.Path
	}
	ext := filepath.Ext(w.cfg.Path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(w.cfg.Path, ext), n, ext)
}

func (w *WAV) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	if w.closed.Load() {
		return nil, fmt.Errorf("wav backend closed")
	}
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("invalid stream layout: %dch %dHz", channels, rate)
	}

	path := w.pathFor(w.count.Add(1) - 1)
	writer, err := encode.CreateWAV(path, audio.Format{
		Codec:      "wav",
		SampleRate: w.cfg.SampleRate,
		Channels:   w.cfg.Channels,
		BitDepth:   w.cfg.BitDepth,
	})
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.paths = append(w.paths, path)
	w.mu.Unlock()

	p := newProps()
	r := newRenderer(p, pull, channels, rate, w.cfg.Channels, w.cfg.SampleRate, w.cfg.BufferFrames)
	out := newClockedOutput(p, r, w.cfg, writer.Write, func() error {
		w.log.Debug("wav output closed", "path", path, "frames", writer.Frames())
		return writer.Close()
	})
	out.onStop = func() { w.open.remove(out) }

	w.open.add(out)
	return out, nil
}

// Close finalizes every file still open
func (w *WAV) Close() error {
	w.closed.Store(true)
	return w.open.stopAll()
}
