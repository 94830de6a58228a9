// ABOUTME: Sine tone generator implementing Source
// ABOUTME: Used for device checks and as a deterministic source in tests
package audio

import (
	"math"
	"sync"
	"time"
)

// ToneSource generates a sine wave of fixed length
type ToneSource struct {
	frequency float64
	amplitude float64
	rate      int
	channels  int
	frames    int64

	mu     sync.Mutex
	pos    int64
	closed bool
}

// NewToneSource creates a tone of the given frequency and length.
// Amplitude is in [0, 1].
func NewToneSource(frequency, amplitude float64, rate, channels int, length time.Duration) *ToneSource {
	return &ToneSource{
		frequency: frequency,
		amplitude: amplitude,
		rate:      rate,
		channels:  channels,
		frames:    DurationToFrames(rate, length),
	}
}

func (s *ToneSource) Channels() int              { return s.channels }
func (s *ToneSource) Rate() int                  { return s.rate }
func (s *ToneSource) TotalLength() time.Duration { return FramesToDuration(s.rate, s.frames) }

func (s *ToneSource) CurrentTime() time.Duration {
	return FramesToDuration(s.rate, s.Position())
}

func (s *ToneSource) SetCurrentTime(t time.Duration) error {
	return s.SetPosition(DurationToFrames(s.rate, t))
}

func (s *ToneSource) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *ToneSource) SetPosition(frame int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.pos = min(max(frame, 0), s.frames)
	return nil
}

func (s *ToneSource) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= s.frames
}

func (s *ToneSource) Read(buf []int32, offset, count int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	frames := int64(count / s.channels)
	if left := s.frames - s.pos; frames > left {
		frames = left
	}

	out := buf[offset:]
	for i := int64(0); i < frames; i++ {
		t := float64(s.pos+i) / float64(s.rate)
		v := SampleFromFloat32(float32(s.amplitude * math.Sin(2*math.Pi*s.frequency*t)))
		for ch := 0; ch < s.channels; ch++ {
			out[int(i)*s.channels+ch] = v
		}
	}
	s.pos += frames
	return int(frames) * s.channels, nil
}

func (s *ToneSource) Clone() (Source, error) {
	return &ToneSource{
		frequency: s.frequency,
		amplitude: s.amplitude,
		rate:      s.rate,
		channels:  s.channels,
		frames:    s.frames,
	}, nil
}

func (s *ToneSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
