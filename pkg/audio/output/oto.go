// ABOUTME: Oto-based audio output implementation
// ABOUTME: One oto.Player per channel reads rendered PCM from the pull callback
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/encode"
	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process
var (
	otoOnce     sync.Once
	otoContext  *oto.Context
	otoErr      error
	otoRate     int
	otoChannels int
)

func sharedOtoContext(cfg Config) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   cfg.period() * 2,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("failed to create oto context: %w", err)
			return
		}
		<-readyChan

		otoContext = ctx
		otoRate = cfg.SampleRate
		otoChannels = cfg.Channels
	})
	return otoContext, otoErr
}

// Oto plays through the platform mixer via ebitengine/oto. The device
// format is always signed 16-bit.
type Oto struct {
	cfg    Config
	ctx    *oto.Context
	log    *slog.Logger
	open   tracker
	closed atomic.Bool
}

// NewOto opens (or reuses) the process-wide oto context
func NewOto(cfg Config) (*Oto, error) {
	cfg.applyDefaults()
	if cfg.BitDepth != 16 {
		cfg.Logger.Warn("oto only supports 16-bit output, ignoring requested bit depth", "bitdepth", cfg.BitDepth)
		cfg.BitDepth = 16
	}

	ctx, err := sharedOtoContext(cfg)
	if err != nil {
		return nil, err
	}

	// oto doesn't support reinitialization, keep the existing format
	if otoRate != cfg.SampleRate || otoChannels != cfg.Channels {
		cfg.Logger.Warn("oto context already initialized with another format",
			"rate", otoRate, "channels", otoChannels,
			"requested_rate", cfg.SampleRate, "requested_channels", cfg.Channels)
		cfg.SampleRate = otoRate
		cfg.Channels = otoChannels
	}

	cfg.Logger.Info("audio output initialized", "backend", "oto", "rate", cfg.SampleRate, "channels", cfg.Channels)
	return &Oto{cfg: cfg, ctx: ctx, log: cfg.Logger}, nil
}

func (o *Oto) Name() string { return "oto" }

func (o *Oto) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	if o.closed.Load() {
		return nil, fmt.Errorf("oto backend closed")
	}
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("invalid stream layout: %dch %dHz", channels, rate)
	}

	enc, err := encode.NewPCM(audio.Format{Codec: "pcm", BitDepth: 16})
	if err != nil {
		return nil, err
	}

	p := newProps()
	out := &otoOutput{
		props:    p,
		backend:  o,
		render:   newRenderer(p, pull, channels, rate, o.cfg.Channels, o.cfg.SampleRate, o.cfg.BufferFrames),
		enc:      enc,
		channels: o.cfg.Channels,
	}
	out.player = o.ctx.NewPlayer(out)
	out.player.SetBufferSize(o.cfg.BufferFrames * o.cfg.Buffers * o.cfg.Channels * 2)
	o.open.add(out)
	return out, nil
}

// Close stops remaining players; the oto context itself lives until exit
func (o *Oto) Close() error {
	o.closed.Store(true)
	return o.open.stopAll()
}

// otoOutput is the io.Reader an oto.Player drains
type otoOutput struct {
	*props
	backend  *Oto
	player   *oto.Player
	render   *renderer
	enc      *encode.PCMEncoder
	channels int
	samples  []int32
	stopped  atomic.Bool
	stopOnce sync.Once
}

func (o *otoOutput) Read(p []byte) (int, error) {
	if o.stopped.Load() {
		return 0, io.EOF
	}

	frames := len(p) / (2 * o.channels)
	n := frames * o.channels
	if cap(o.samples) < n {
		o.samples = make([]int32, n)
	}
	samples := o.samples[:n]

	o.render.Render(samples)
	return o.enc.EncodeInto(p, samples), nil
}

func (o *otoOutput) Start() error {
	o.player.Play()
	return nil
}

func (o *otoOutput) Stop() error {
	o.stopOnce.Do(func() {
		o.stopped.Store(true)
		o.player.Pause()
		o.player.Close()
		o.backend.open.remove(o)
	})
	return nil
}

func (o *otoOutput) Err() error {
	if err := o.player.Err(); err != nil {
		return fmt.Errorf("oto player failed: %w", err)
	}
	if err := o.backend.ctx.Err(); err != nil {
		return fmt.Errorf("oto context failed: %w", err)
	}
	return o.props.Err()
}
