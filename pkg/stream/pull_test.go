// ABOUTME: Tests for the pull callback
// ABOUTME: Tests silence on underrun, the lookahead gate, flushing and panic containment
package stream

import (
	"testing"
)

func newPullDriver(buffered int) *driver {
	d := &driver{log: discardLogger(), ring: NewRing(1, 0)}
	d.ring.Write(sequence(1, buffered), 0, buffered)
	return d
}

func TestPullUnderrunIsSilence(t *testing.T) {
	// one sample short of the lookahead for an 8-sample pull
	buffered := lookaheadChunks*8 - 1
	d := newPullDriver(buffered)

	buf := []int32{5, 5, 5, 5, 5, 5, 5, 5}
	d.pull(buf)

	for i, v := range buf {
		if v != 0 {
			t.Errorf("sample %d: expected silence, got %d", i, v)
		}
	}
	if d.ring.AvailableRead() != buffered {
		t.Errorf("expected ring untouched, got %d", d.ring.AvailableRead())
	}
	if d.lastPull.Load() != 8 {
		t.Errorf("expected last pull 8, got %d", d.lastPull.Load())
	}
}

func TestPullLookaheadGate(t *testing.T) {
	tests := []struct {
		name     string
		buffered int
		flushing bool
		wantRead int
	}{
		{"below lookahead", 6*16 - 1, false, 0},
		{"at lookahead", 6 * 16, false, 16},
		{"flushing drains remainder", 5, true, 5},
		{"flushing full buffer", 40, true, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newPullDriver(tt.buffered)
			d.flushing.Store(tt.flushing)

			buf := make([]int32, 16)
			d.pull(buf)

			for i := 0; i < tt.wantRead; i++ {
				if buf[i] != int32(i+1) {
					t.Fatalf("sample %d: expected %d, got %d", i, i+1, buf[i])
				}
			}
			for i := tt.wantRead; i < len(buf); i++ {
				if buf[i] != 0 {
					t.Fatalf("sample %d: expected silence, got %d", i, buf[i])
				}
			}
			if d.consumed.Load() != int64(tt.wantRead) {
				t.Errorf("expected %d consumed, got %d", tt.wantRead, d.consumed.Load())
			}
		})
	}
}

func TestPullRecoversPanic(t *testing.T) {
	d := &driver{log: discardLogger()}

	buf := []int32{1, 2, 3}
	d.pull(buf)

	for i, v := range buf {
		if v != 0 {
			t.Errorf("sample %d: expected silence after panic, got %d", i, v)
		}
	}
}

func TestCeilingLeavesRoomForLookahead(t *testing.T) {
	d := &driver{minBuf: 4410}
	if d.ceiling() != 8820 {
		t.Errorf("expected 2*minBuf, got %d", d.ceiling())
	}

	d.lastPull.Store(4096)
	if d.ceiling() <= 4096*lookaheadChunks {
		t.Errorf("expected ceiling above the lookahead, got %d", d.ceiling())
	}
}
