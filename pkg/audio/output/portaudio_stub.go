//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"context"
	"errors"
)

var errPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio always fails without the portaudio build tag
func NewPortAudio(cfg Config) (*PortAudio, error) {
	return nil, errPortAudioDisabled
}

func (p *PortAudio) Name() string { return "portaudio" }

func (p *PortAudio) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	return nil, errPortAudioDisabled
}

func (p *PortAudio) Close() error {
	return nil
}
