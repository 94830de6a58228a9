// ABOUTME: Tests for the channel id allocator
// ABOUTME: Tests lowest-free allocation, exhaustion and release
package stream

import (
	"errors"
	"testing"
)

func TestChannelAllocatorLowestFree(t *testing.T) {
	a := NewChannelAllocator(3)

	for want := 0; want < 3; want++ {
		id, err := a.Acquire()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != want {
			t.Errorf("expected id %d, got %d", want, id)
		}
	}

	if _, err := a.Acquire(); !errors.Is(err, ErrNoChannels) {
		t.Errorf("expected ErrNoChannels, got %v", err)
	}

	a.Release(1)
	id, err := a.Acquire()
	if err != nil || id != 1 {
		t.Errorf("expected released id 1, got %d (%v)", id, err)
	}
}

func TestChannelAllocatorRelease(t *testing.T) {
	a := NewChannelAllocator(2)
	id, _ := a.Acquire()

	a.Release(id)
	a.Release(id)
	a.Release(-1)
	a.Release(99)

	if a.InUse() != 0 {
		t.Errorf("expected 0 in use, got %d", a.InUse())
	}
}

func TestChannelAllocatorDefaultMax(t *testing.T) {
	if got := NewChannelAllocator(0).Max(); got != DefaultMaxChannels {
		t.Errorf("expected %d, got %d", DefaultMaxChannels, got)
	}
}
