//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform callback streams using PortAudio, one per channel
package output

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/gordonklaus/portaudio"
)

// PortAudio plays 16-bit audio through the default PortAudio device
type PortAudio struct {
	cfg    Config
	log    *slog.Logger
	open   tracker
	closed atomic.Bool
}

// NewPortAudio initializes PortAudio
func NewPortAudio(cfg Config) (*PortAudio, error) {
	cfg.applyDefaults()
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	cfg.Logger.Info("audio output initialized", "backend", "portaudio", "rate", cfg.SampleRate, "channels", cfg.Channels)
	return &PortAudio{cfg: cfg, log: cfg.Logger}, nil
}

func (p *PortAudio) Name() string { return "portaudio" }

func (p *PortAudio) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("portaudio backend closed")
	}
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("invalid stream layout: %dch %dHz", channels, rate)
	}

	props := newProps()
	out := &portAudioOutput{
		props:   props,
		backend: p,
		render:  newRenderer(props, pull, channels, rate, p.cfg.Channels, p.cfg.SampleRate, p.cfg.BufferFrames),
	}

	stream, err := portaudio.OpenDefaultStream(0, p.cfg.Channels, float64(p.cfg.SampleRate), p.cfg.BufferFrames, out.callback)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}
	out.stream = stream

	p.open.add(out)
	return out, nil
}

// Close stops remaining streams and terminates PortAudio
func (p *PortAudio) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.open.stopAll()
	if terr := portaudio.Terminate(); terr != nil && err == nil {
		err = fmt.Errorf("failed to terminate portaudio: %w", terr)
	}
	return err
}

type portAudioOutput struct {
	*props
	backend  *PortAudio
	stream   *portaudio.Stream
	render   *renderer
	samples  []int32
	stopOnce sync.Once
}

func (o *portAudioOutput) callback(out []int16) {
	if cap(o.samples) < len(out) {
		o.samples = make([]int32, len(out))
	}
	samples := o.samples[:len(out)]

	o.render.Render(samples)
	for i, s := range samples {
		out[i] = audio.SampleToInt16(s)
	}
}

func (o *portAudioOutput) Start() error {
	if err := o.stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	return nil
}

func (o *portAudioOutput) Stop() error {
	var err error
	o.stopOnce.Do(func() {
		if serr := o.stream.Stop(); serr != nil {
			err = fmt.Errorf("failed to stop stream: %w", serr)
		}
		if cerr := o.stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close stream: %w", cerr)
		}
		o.backend.open.remove(o)
	})
	return err
}
