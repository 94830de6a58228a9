// ABOUTME: Allocator for small integer playback channel ids
// ABOUTME: Hands out the lowest free id; ids return to the pool when a channel fully stops
package stream

import (
	"fmt"
	"sync"
)

// DefaultMaxChannels bounds concurrent playbacks when no limit is configured
const DefaultMaxChannels = 32

// ChannelAllocator hands out ids in [0, Max)
type ChannelAllocator struct {
	mu    sync.Mutex
	inUse []bool
	count int
}

// NewChannelAllocator creates a pool of max ids
func NewChannelAllocator(max int) *ChannelAllocator {
	if max <= 0 {
		max = DefaultMaxChannels
	}
	return &ChannelAllocator{inUse: make([]bool, max)}
}

// Acquire returns the lowest free id
func (a *ChannelAllocator) Acquire() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, used := range a.inUse {
		if !used {
			a.inUse[id] = true
			a.count++
			return id, nil
		}
	}
	return -1, fmt.Errorf("%w: all %d in use", ErrNoChannels, len(a.inUse))
}

// Release returns id to the pool. Releasing a free or unknown id is a no-op.
func (a *ChannelAllocator) Release(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id < 0 || id >= len(a.inUse) || !a.inUse[id] {
		return
	}
	a.inUse[id] = false
	a.count--
}

// InUse returns the number of ids currently held
func (a *ChannelAllocator) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// Max returns the pool size
func (a *ChannelAllocator) Max() int {
	return len(a.inUse)
}
