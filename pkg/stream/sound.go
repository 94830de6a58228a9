// ABOUTME: Named playable audio backed by a template source
// ABOUTME: Each Play streams an independent clone; OnComplete fires after every playback
package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
)

// Sound is a reusable sound on an engine. The template source is only
// cloned, never read, so any number of playbacks may run at once.
type Sound struct {
	Name string

	engine   *Engine
	template audio.Source

	mu         sync.Mutex
	onComplete func()
}

// NewSound wraps src. The sound owns src and closes it in Close.
func (e *Engine) NewSound(name string, src audio.Source) *Sound {
	return &Sound{Name: name, engine: e, template: src}
}

// SetOnComplete sets a callback run after every playback of this sound
// ends, whether it finished or was cancelled
func (s *Sound) SetOnComplete(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

func (s *Sound) complete() {
	s.mu.Lock()
	fn := s.onComplete
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Length returns the sound duration
func (s *Sound) Length() time.Duration { return s.template.TotalLength() }

// Channels returns the interleaved channel count
func (s *Sound) Channels() int { return s.template.Channels() }

// Rate returns the sample rate
func (s *Sound) Rate() int { return s.template.Rate() }

// Stream returns an independent cursor positioned at the start
func (s *Sound) Stream() (audio.Source, error) {
	src, err := s.template.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to open stream for %s: %w", s.Name, err)
	}
	return src, nil
}

// Decode renders up to maxFrames frames (all when maxFrames <= 0) into memory
func (s *Sound) Decode(maxFrames int64) (*audio.Clip, error) {
	src, err := s.Stream()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	clip, err := audio.ReadAll(src, maxFrames)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Name, err)
	}
	return clip, nil
}

// Play starts a new playback of the sound
func (s *Sound) Play(ctx context.Context, params PlayParams) (*Handle, error) {
	src, err := s.Stream()
	if err != nil {
		return nil, err
	}
	return s.engine.start(ctx, s.Name, src, true, params, s.complete)
}

// Close releases the template source
func (s *Sound) Close() error {
	return s.template.Close()
}
