// ABOUTME: Pull-based sample source interface
// ABOUTME: Cursor over decoded PCM consumed by the streaming engine
package audio

import (
	"errors"
	"time"
)

// ErrClosed is returned by sources used after Close
var ErrClosed = errors.New("audio source closed")

// Source is a readable, seekable cursor over interleaved PCM samples in the
// 24-bit range. Implementations must tolerate seeks (SetCurrentTime,
// SetPosition) from one goroutine while another goroutine reads.
type Source interface {
	// Channels returns the interleaved channel count
	Channels() int

	// Rate returns the sample rate in Hz
	Rate() int

	// TotalLength returns the stream duration, or 0 when unknown
	TotalLength() time.Duration

	// CurrentTime returns the position of the next read as a duration
	CurrentTime() time.Duration

	// SetCurrentTime moves the cursor to the given time
	SetCurrentTime(t time.Duration) error

	// Position returns the position of the next read in frames
	Position() int64

	// SetPosition moves the cursor to the given frame
	SetPosition(frame int64) error

	// Finished reports whether the cursor reached the end of the stream
	Finished() bool

	// Read fills buf[offset:offset+count] with up to count samples (whole
	// frames) and returns the number written. End of stream is reported
	// through Finished, never as an error.
	Read(buf []int32, offset, count int) (int, error)

	// Clone returns an independent cursor over the same audio, positioned at the start
	Clone() (Source, error)

	// Close releases the cursor
	Close() error
}

// ReadAll drains src from its current position into a clip, stopping after
// maxFrames frames when maxFrames > 0
func ReadAll(src Source, maxFrames int64) (*Clip, error) {
	channels := src.Channels()
	clip := &Clip{
		Format: Format{Codec: "pcm", SampleRate: src.Rate(), Channels: channels, BitDepth: 24},
	}

	buf := make([]int32, 4096*channels)
	for !src.Finished() {
		want := len(buf)
		if maxFrames > 0 {
			left := (maxFrames - clip.Frames()) * int64(channels)
			if left <= 0 {
				break
			}
			if left < int64(want) {
				want = int(left)
			}
		}
		n, err := src.Read(buf, 0, want)
		if err != nil {
			return nil, err
		}
		if n == 0 && !src.Finished() {
			break
		}
		clip.Samples = append(clip.Samples, buf[:n]...)
	}
	return clip, nil
}
