// ABOUTME: Shared fixtures for engine tests
// ABOUTME: Ramp sources, an instrumented source wrapper and a manual drain loop
package stream

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, maxChannels int) (*Engine, *output.Manual) {
	t.Helper()
	backend := output.NewManual()
	engine, err := NewEngine(Config{
		Backend:     backend,
		MaxChannels: maxChannels,
		Logger:      discardLogger(),
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine, backend
}

// rampClip holds frames whose samples count up from 1 in every channel
func rampClip(t *testing.T, rate, channels, frames int) *audio.ClipSource {
	t.Helper()
	samples := make([]int32, frames*channels)
	for i := range samples {
		samples[i] = int32(i/channels + 1)
	}
	src, err := audio.NewClipSource(audio.Format{SampleRate: rate, Channels: channels, BitDepth: 24}, samples)
	if err != nil {
		t.Fatalf("failed to create clip: %v", err)
	}
	return src
}

// countingSource records how the driver uses a source and injects failures
type countingSource struct {
	audio.Source

	mu        sync.Mutex
	reads     []int
	rewinds   int
	closed    bool
	failRead  int // 1-based read that fails; 0 never
	panicRead bool
}

func (p *countingSource) Read(buf []int32, offset, count int) (int, error) {
	p.mu.Lock()
	call := len(p.reads) + 1
	fail, panics := p.failRead == call, p.panicRead
	p.mu.Unlock()

	if panics {
		panic("decoder exploded")
	}
	if fail {
		p.mu.Lock()
		p.reads = append(p.reads, 0)
		p.mu.Unlock()
		return 0, errBoom
	}

	n, err := p.Source.Read(buf, offset, count)
	p.mu.Lock()
	p.reads = append(p.reads, n)
	p.mu.Unlock()
	return n, err
}

func (p *countingSource) SetPosition(frame int64) error {
	p.mu.Lock()
	p.rewinds++
	p.mu.Unlock()
	return p.Source.SetPosition(frame)
}

func (p *countingSource) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.Source.Close()
}

func (p *countingSource) Reads() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.reads...)
}

func (p *countingSource) Rewinds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rewinds
}

func (p *countingSource) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// drain pulls frames at a time until the playback ends and returns every
// non-silent sample
func drain(t *testing.T, h *Handle, out *output.ManualOutput, frames int) []int32 {
	t.Helper()
	var got []int32
	deadline := time.Now().Add(10 * time.Second)
	for {
		select {
		case <-h.Done():
			return got
		default:
		}
		if time.Now().After(deadline) {
			t.Fatalf("playback did not finish, phase %s, buffered %d", h.Phase(), h.Buffered())
		}
		for _, v := range out.Pull(frames) {
			if v != 0 {
				got = append(got, v)
			}
		}
		time.Sleep(50 * time.Microsecond)
	}
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("playback did not end, phase %s", h.Phase())
	}
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// callbacks counts OnFinish and OnCancel invocations
type callbacks struct {
	mu       sync.Mutex
	finished int
	canceled int
	seeks    int
}

func (c *callbacks) params(p PlayParams) PlayParams {
	p.OnFinish = func() { c.mu.Lock(); c.finished++; c.mu.Unlock() }
	p.OnCancel = func() { c.mu.Lock(); c.canceled++; c.mu.Unlock() }
	p.OnState = func(ph Phase) {
		if ph == PhaseSeek {
			c.mu.Lock()
			c.seeks++
			c.mu.Unlock()
		}
	}
	return p
}

func (c *callbacks) counts() (finished, canceled, seeks int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished, c.canceled, c.seeks
}
