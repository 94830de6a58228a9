// ABOUTME: Output backend that discards audio on a clock
// ABOUTME: Used for headless runs and benchmarks of the streaming pipeline
package output

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Null pulls at the device rate and throws the audio away
type Null struct {
	cfg    Config
	open   tracker
	frames atomic.Int64
}

// NewNull creates a discarding backend
func NewNull(cfg Config) *Null {
	cfg.applyDefaults()
	return &Null{cfg: cfg}
}

func (n *Null) Name() string { return "null" }

// Frames returns the total device frames rendered by all outputs
func (n *Null) Frames() int64 {
	return n.frames.Load()
}

func (n *Null) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("invalid stream layout: %dch %dHz", channels, rate)
	}

	p := newProps()
	r := newRenderer(p, pull, channels, rate, n.cfg.Channels, n.cfg.SampleRate, n.cfg.BufferFrames)
	out := newClockedOutput(p, r, n.cfg, func(samples []int32) error {
		n.frames.Add(int64(len(samples) / n.cfg.Channels))
		return nil
	}, nil)
	out.onStop = func() { n.open.remove(out) }

	n.open.add(out)
	return out, nil
}

func (n *Null) Close() error {
	return n.open.stopAll()
}
