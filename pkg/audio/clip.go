// ABOUTME: In-memory decoded audio and its cursor
// ABOUTME: Clips are immutable and shared by every ClipSource cloned from them
package audio

import (
	"fmt"
	"sync"
	"time"
)

// Clip is fully decoded interleaved PCM
type Clip struct {
	Format  Format
	Samples []int32
}

// Frames returns the number of frames in the clip
func (c *Clip) Frames() int64 {
	if c.Format.Channels <= 0 {
		return 0
	}
	return int64(len(c.Samples) / c.Format.Channels)
}

// Duration returns the clip length
func (c *Clip) Duration() time.Duration {
	return c.Format.FrameDuration(c.Frames())
}

// Source returns a new cursor positioned at the start of the clip
func (c *Clip) Source() *ClipSource {
	return &ClipSource{clip: c}
}

// ClipSource reads from a shared Clip
type ClipSource struct {
	clip   *Clip
	mu     sync.Mutex
	pos    int64
	closed bool
}

// NewClipSource wraps samples in a clip and returns a cursor over it
func NewClipSource(format Format, samples []int32) (*ClipSource, error) {
	if format.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}
	if len(samples)%format.Channels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of %d channels", len(samples), format.Channels)
	}
	clip := &Clip{Format: format, Samples: samples}
	return clip.Source(), nil
}

// Clip returns the underlying clip
func (s *ClipSource) Clip() *Clip { return s.clip }

func (s *ClipSource) Channels() int { return s.clip.Format.Channels }
func (s *ClipSource) Rate() int     { return s.clip.Format.SampleRate }

func (s *ClipSource) TotalLength() time.Duration {
	return s.clip.Duration()
}

func (s *ClipSource) CurrentTime() time.Duration {
	return s.clip.Format.FrameDuration(s.Position())
}

func (s *ClipSource) SetCurrentTime(t time.Duration) error {
	return s.SetPosition(s.clip.Format.DurationFrames(t))
}

func (s *ClipSource) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *ClipSource) SetPosition(frame int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if frame < 0 {
		frame = 0
	}
	if frames := s.clip.Frames(); frame > frames {
		frame = frames
	}
	s.pos = frame
	return nil
}

func (s *ClipSource) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= s.clip.Frames()
}

func (s *ClipSource) Read(buf []int32, offset, count int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	channels := s.clip.Format.Channels
	frames := count / channels
	if left := s.clip.Frames() - s.pos; int64(frames) > left {
		frames = int(left)
	}
	if frames <= 0 {
		return 0, nil
	}

	start := int(s.pos) * channels
	n := copy(buf[offset:offset+frames*channels], s.clip.Samples[start:start+frames*channels])
	s.pos += int64(frames)
	return n, nil
}

func (s *ClipSource) Clone() (Source, error) {
	return s.clip.Source(), nil
}

func (s *ClipSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
