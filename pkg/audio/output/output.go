// ABOUTME: Audio output backend contract
// ABOUTME: Backends create one pull-driven Output per playing channel
package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrUnknownBackend is returned by New for names it does not recognize
var ErrUnknownBackend = errors.New("unknown output backend")

// PullFunc fills buf with interleaved samples in the channel's source
// layout. It is called from the device thread and must never block.
type PullFunc func(buf []int32)

// Output is one channel's playback stream on a backend. Property setters
// are safe to call from any goroutine while the device is pulling.
type Output interface {
	// Paused reports whether the output renders silence instead of pulling
	Paused() bool
	SetPaused(paused bool)

	// Volume is a linear gain, 1.0 is unity
	Volume() float64
	SetVolume(volume float64)

	// Pitch scales playback rate, 1.0 is the source rate
	Pitch() float64
	SetPitch(pitch float64)

	// Panning ranges from -1 (left) to 1 (right)
	Panning() float64
	SetPanning(pan float64)

	// Start begins pulling; it is called at most once
	Start() error

	// Stop halts pulling and releases the device stream
	Stop() error

	// Err reports an asynchronous device failure
	Err() error
}

// Backend creates outputs on a platform audio device
type Backend interface {
	// Name identifies the backend in logs and config
	Name() string

	// Create opens a stream for a source with the given layout. The stream
	// does not pull until Start is called.
	Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error)

	// Close stops every output still open and releases the device
	Close() error
}

// Config holds backend settings
type Config struct {
	SampleRate   int     // Device sample rate (default: 44100)
	Channels     int     // Device channel count (default: 2)
	BitDepth     int     // Device sample size: 16, 24 or 32 (default: 16)
	BufferFrames int     // Frames per device period (default: 1024)
	Buffers      int     // Device periods queued ahead (default: 3)
	Path         string  // Output file for the wav backend (default: "soundstream.wav")
	Speed        float64 // Clock multiplier for file backends (default: 1)
	Logger       *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.Channels <= 0 {
		c.Channels = 2
	}
	if c.BitDepth == 0 {
		c.BitDepth = 16
	}
	if c.BufferFrames <= 0 {
		c.BufferFrames = 1024
	}
	if c.Buffers <= 0 {
		c.Buffers = 3
	}
	if c.Path == "" {
		c.Path = "soundstream.wav"
	}
	if c.Speed <= 0 {
		c.Speed = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// period returns the wall-clock length of one device period
func (c *Config) period() time.Duration {
	return time.Duration(float64(c.BufferFrames) * float64(time.Second) / float64(c.SampleRate))
}

// Names lists the backends New accepts
var Names = []string{"oto", "malgo", "portaudio", "wav", "null"}

// New creates the backend registered under name
func New(name string, cfg Config) (Backend, error) {
	var (
		backend Backend
		err     error
	)
	switch name {
	case "oto":
		backend, err = wrap(NewOto(cfg))
	case "malgo":
		backend, err = wrap(NewMalgo(cfg))
	case "portaudio":
		backend, err = wrap(NewPortAudio(cfg))
	case "wav":
		backend, err = wrap(NewWAV(cfg))
	case "null":
		backend = NewNull(cfg)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Names)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s output: %w", name, err)
	}
	return backend, nil
}

// wrap keeps a typed nil out of the Backend interface
func wrap[B Backend](b B, err error) (Backend, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}
