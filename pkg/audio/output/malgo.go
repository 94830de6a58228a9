// ABOUTME: Malgo-based audio output implementation with 24-bit support
// ABOUTME: Opens one miniaudio playback device per channel via malgo
package output

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/encode"
	"github.com/gen2brain/malgo"
)

// Malgo plays through miniaudio at 16, 24 or 32 bits
type Malgo struct {
	cfg      Config
	log      *slog.Logger
	malgoCtx *malgo.AllocatedContext
	format   malgo.FormatType
	open     tracker
	closed   atomic.Bool
}

// NewMalgo initializes a miniaudio context
func NewMalgo(cfg Config) (*Malgo, error) {
	cfg.applyDefaults()

	var format malgo.FormatType
	switch cfg.BitDepth {
	case 16:
		format = malgo.FormatS16
	case 24:
		format = malgo.FormatS24
	case 32:
		format = malgo.FormatS32
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", cfg.BitDepth)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		cfg.Logger.Debug("miniaudio", "message", message)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	cfg.Logger.Info("audio output initialized",
		"backend", "malgo", "rate", cfg.SampleRate, "channels", cfg.Channels, "format", formatName(format))

	return &Malgo{cfg: cfg, log: cfg.Logger, malgoCtx: ctx, format: format}, nil
}

func (m *Malgo) Name() string { return "malgo" }

func (m *Malgo) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	if m.closed.Load() {
		return nil, fmt.Errorf("malgo backend closed")
	}
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("invalid stream layout: %dch %dHz", channels, rate)
	}

	enc, err := encode.NewPCM(audio.Format{Codec: "pcm", BitDepth: m.cfg.BitDepth})
	if err != nil {
		return nil, err
	}

	p := newProps()
	out := &malgoOutput{
		props:    p,
		backend:  m,
		render:   newRenderer(p, pull, channels, rate, m.cfg.Channels, m.cfg.SampleRate, m.cfg.BufferFrames),
		enc:      enc,
		channels: m.cfg.Channels,
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = m.format
	deviceConfig.Playback.Channels = uint32(m.cfg.Channels)
	deviceConfig.SampleRate = uint32(m.cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(m.cfg.BufferFrames)
	deviceConfig.Periods = uint32(m.cfg.Buffers)
	deviceConfig.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: out.dataCallback,
		Stop: out.stopCallback,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}
	out.device = device

	m.open.add(out)
	return out, nil
}

// Close stops remaining devices and frees the context
func (m *Malgo) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := m.open.stopAll()

	if uerr := m.malgoCtx.Uninit(); uerr != nil {
		m.log.Warn("malgo context uninit error", "err", uerr)
	}
	m.malgoCtx.Free()
	return err
}

type malgoOutput struct {
	*props
	backend  *Malgo
	device   *malgo.Device
	render   *renderer
	enc      *encode.PCMEncoder
	channels int
	samples  []int32
	stopping atomic.Bool
	stopOnce sync.Once
}

// dataCallback is called by malgo to fill the device buffer
func (o *malgoOutput) dataCallback(pOutput, pInput []byte, frameCount uint32) {
	n := int(frameCount) * o.channels
	if cap(o.samples) < n {
		o.samples = make([]int32, n)
	}
	samples := o.samples[:n]

	o.render.Render(samples)
	o.enc.EncodeInto(pOutput, samples)
}

// stopCallback fires when the device stops, including on device loss
func (o *malgoOutput) stopCallback() {
	if !o.stopping.Load() {
		o.fail(fmt.Errorf("playback device stopped unexpectedly"))
	}
}

func (o *malgoOutput) Start() error {
	if err := o.device.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	return nil
}

func (o *malgoOutput) Stop() error {
	var err error
	o.stopOnce.Do(func() {
		o.stopping.Store(true)
		if serr := o.device.Stop(); serr != nil {
			err = fmt.Errorf("failed to stop device: %w", serr)
		}
		o.device.Uninit()
		o.backend.open.remove(o)
	})
	return err
}

// formatName returns human-readable format name
func formatName(format malgo.FormatType) string {
	switch format {
	case malgo.FormatS16:
		return "S16"
	case malgo.FormatS24:
		return "S24"
	case malgo.FormatS32:
		return "S32"
	default:
		return fmt.Sprintf("Unknown(%d)", format)
	}
}
