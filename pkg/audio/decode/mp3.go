// ABOUTME: MP3 audio decoder
// ABOUTME: Streams MP3 through go-mp3 as a seekable source, reopening on Clone
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit little-endian stereo
const (
	mp3Channels      = 2
	mp3BytesPerFrame = 4
)

// MP3 decodes MP3 streams
type MP3 struct{}

// Decode buffers r in memory so that clones can replay it
func (MP3) Decode(r io.ReadSeeker) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mp3 data: %w", err)
	}
	return newMP3Source(func() (io.ReadSeekCloser, error) {
		return nopCloser{bytes.NewReader(data)}, nil
	})
}

// NewMP3File streams the MP3 file at path
func NewMP3File(path string) (*MP3Source, error) {
	return newMP3Source(func() (io.ReadSeekCloser, error) {
		return os.Open(path)
	})
}

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }

// MP3Source is a streaming MP3 cursor
type MP3Source struct {
	open func() (io.ReadSeekCloser, error)

	mu       sync.Mutex
	rc       io.ReadSeekCloser
	decoder  *mp3.Decoder
	rate     int
	frames   int64
	pos      int64
	finished bool
	closed   bool
	buf      []byte
}

func newMP3Source(open func() (io.ReadSeekCloser, error)) (*MP3Source, error) {
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open mp3 stream: %w", err)
	}

	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	frames := decoder.Length() / mp3BytesPerFrame
	if frames < 0 {
		frames = 0
	}

	return &MP3Source{
		open:     open,
		rc:       rc,
		decoder:  decoder,
		rate:     decoder.SampleRate(),
		frames:   frames,
		finished: frames == 0,
	}, nil
}

func (s *MP3Source) Channels() int { return mp3Channels }
func (s *MP3Source) Rate() int     { return s.rate }

func (s *MP3Source) TotalLength() time.Duration {
	return audio.FramesToDuration(s.rate, s.frames)
}

func (s *MP3Source) CurrentTime() time.Duration {
	return audio.FramesToDuration(s.rate, s.Position())
}

func (s *MP3Source) SetCurrentTime(t time.Duration) error {
	return s.SetPosition(audio.DurationToFrames(s.rate, t))
}

func (s *MP3Source) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *MP3Source) SetPosition(frame int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return audio.ErrClosed
	}

	frame = min(max(frame, 0), s.frames)
	if _, err := s.decoder.Seek(frame*mp3BytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek mp3 stream: %w", err)
	}
	s.pos = frame
	s.finished = frame >= s.frames
	return nil
}

func (s *MP3Source) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *MP3Source) Read(buf []int32, offset, count int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, audio.ErrClosed
	}
	if s.finished {
		return 0, nil
	}

	need := (count / mp3Channels) * mp3BytesPerFrame
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	raw := s.buf[:need]

	n, err := io.ReadFull(s.decoder, raw)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.finished = true
		err = nil
	}
	if err != nil {
		return 0, fmt.Errorf("mp3 decode error: %w", err)
	}

	frames := n / mp3BytesPerFrame
	out := buf[offset:]
	for i := 0; i < frames*mp3Channels; i++ {
		sample16 := int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
		out[i] = audio.SampleFromInt16(sample16)
	}
	s.pos += int64(frames)
	if s.pos >= s.frames {
		s.finished = true
	}
	return frames * mp3Channels, nil
}

func (s *MP3Source) Clone() (audio.Source, error) {
	return newMP3Source(s.open)
}

func (s *MP3Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rc.Close()
}
