// ABOUTME: Tests for the device renderer
// ABOUTME: Tests pause, layout mapping, gain, pan, rate conversion and pitch
package output

import (
	"testing"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
)

// rampPull fills each pull with consecutive frame indices scaled by step
type rampPull struct {
	channels int
	step     int32
	next     int32
	calls    int
	samples  int
}

func (p *rampPull) pull(buf []int32) {
	p.calls++
	p.samples += len(buf)
	for i := 0; i < len(buf); i += p.channels {
		for ch := 0; ch < p.channels; ch++ {
			buf[i+ch] = p.next * p.step
		}
		p.next++
	}
}

func constPull(values ...int32) PullFunc {
	return func(buf []int32) {
		for i := range buf {
			buf[i] = values[i%len(values)]
		}
	}
}

func TestRenderPausedDoesNotPull(t *testing.T) {
	src := &rampPull{channels: 2, step: 1}
	p := newProps()
	r := newRenderer(p, src.pull, 2, 44100, 2, 44100, 16)

	p.SetPaused(true)
	dst := []int32{9, 9, 9, 9}
	r.Render(dst)

	for i, v := range dst {
		if v != 0 {
			t.Errorf("sample %d: expected silence, got %d", i, v)
		}
	}
	if src.calls != 0 {
		t.Errorf("expected no pulls while paused, got %d", src.calls)
	}
}

func TestRenderPassthroughKeepsLeftovers(t *testing.T) {
	src := &rampPull{channels: 1, step: 1}
	r := newRenderer(newProps(), src.pull, 1, 48000, 1, 48000, 4)

	dst := make([]int32, 3)
	r.Render(dst)
	assertEqual(t, dst, []int32{0, 1, 2})
	if src.calls != 1 {
		t.Fatalf("expected 1 pull, got %d", src.calls)
	}

	r.Render(dst)
	assertEqual(t, dst, []int32{3, 4, 5})
	if src.calls != 2 {
		t.Errorf("expected 2 pulls, got %d", src.calls)
	}
	if src.samples != 8 {
		t.Errorf("expected pulls of 4 samples, got %d total", src.samples)
	}
}

func TestRenderChannelMapping(t *testing.T) {
	tests := []struct {
		name  string
		srcCh int
		dstCh int
		pull  PullFunc
		want  []int32
	}{
		{"mono to stereo", 1, 2, constPull(100), []int32{100, 100, 100, 100}},
		{"stereo to mono", 2, 1, constPull(100, 300), []int32{200, 200}},
		{"stereo to quad", 2, 4, constPull(1, 2), []int32{1, 2, 1, 2}},
		{"quad to stereo", 4, 2, constPull(1, 2, 3, 4), []int32{1, 2, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(newProps(), tt.pull, tt.srcCh, 44100, tt.dstCh, 44100, 8)
			dst := make([]int32, len(tt.want))
			r.Render(dst)
			assertEqual(t, dst, tt.want)
		})
	}
}

func TestRenderGain(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		pan    float64
		input  int32
		want   []int32
	}{
		{"unity", 1, 0, 1000, []int32{1000, 1000}},
		{"half volume", 0.5, 0, 1000, []int32{500, 500}},
		{"hard left", 1, -1, 1000, []int32{1000, 0}},
		{"hard right", 1, 1, 1000, []int32{0, 1000}},
		{"half right", 1, 0.5, 1000, []int32{500, 1000}},
		{"clamped", 4, 0, audio.Max24Bit / 2, []int32{audio.Max24Bit, audio.Max24Bit}},
		{"muted", 0, 0, 1000, []int32{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProps()
			p.SetVolume(tt.volume)
			p.SetPanning(tt.pan)
			r := newRenderer(p, constPull(tt.input), 2, 44100, 2, 44100, 8)

			dst := make([]int32, 2)
			r.Render(dst)
			assertEqual(t, dst, tt.want)
		})
	}
}

func TestRenderUpsamples(t *testing.T) {
	src := &rampPull{channels: 1, step: 100}
	r := newRenderer(newProps(), src.pull, 1, 22050, 1, 44100, 64)

	dst := make([]int32, 8)
	r.Render(dst)
	assertEqual(t, dst, []int32{0, 50, 100, 150, 200, 250, 300, 350})
}

func TestRenderPitchConsumesFaster(t *testing.T) {
	normal := &rampPull{channels: 2, step: 1}
	r := newRenderer(newProps(), normal.pull, 2, 44100, 2, 44100, 256)

	fast := &rampPull{channels: 2, step: 1}
	p := newProps()
	p.SetPitch(2)
	rf := newRenderer(p, fast.pull, 2, 44100, 2, 44100, 256)

	dst := make([]int32, 2*4096)
	for i := 0; i < 4; i++ {
		r.Render(dst)
		rf.Render(dst)
	}

	ratio := float64(fast.samples) / float64(normal.samples)
	if ratio < 1.9 || ratio > 2.1 {
		t.Errorf("expected pitch 2 to pull ~2x the audio, got %.2fx", ratio)
	}
}

func assertEqual(t *testing.T, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
