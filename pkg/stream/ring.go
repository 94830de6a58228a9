// ABOUTME: Single-producer single-consumer ring buffer of interleaved samples
// ABOUTME: Grows on the producer side; cursors are atomics so the consumer never locks
package stream

import (
	"math/bits"
	"sync/atomic"
)

const minRingCapacity = 1024

// Ring is a FIFO of interleaved int32 samples shared by exactly one
// producer goroutine (Write) and one consumer goroutine (Read).
//
// The read and write cursors increase monotonically and are published
// with atomic stores, so AvailableRead is a consistent snapshot from
// either side. Growth copies the unread region into a larger slice and
// publishes it before the write cursor covers any sample stored there.
type Ring struct {
	channels int
	buf      atomic.Pointer[[]int32]
	w        atomic.Uint64
	r        atomic.Uint64
}

// NewRing creates a ring for the given channel count with room for at
// least initialCapacity samples
func NewRing(channels, initialCapacity int) *Ring {
	if channels <= 0 {
		channels = 1
	}
	r := &Ring{channels: channels}
	buf := make([]int32, ceilPow2(max(initialCapacity, minRingCapacity)))
	r.buf.Store(&buf)
	return r
}

// Channels returns the interleaved channel count fixed at construction
func (r *Ring) Channels() int {
	return r.channels
}

// Capacity returns the current storage size in samples
func (r *Ring) Capacity() int {
	return len(*r.buf.Load())
}

// AvailableRead returns the number of samples written but not yet read
func (r *Ring) AvailableRead() int {
	// Load r before w so the difference is never negative
	rd := r.r.Load()
	return int(r.w.Load() - rd)
}

// AvailableWrite returns the free space before the next growth
func (r *Ring) AvailableWrite() int {
	return r.Capacity() - r.AvailableRead()
}

// Write appends samples[offset:offset+count], growing storage when the
// free space is short. Producer side only. Returns count.
func (r *Ring) Write(samples []int32, offset, count int) int {
	if count <= 0 {
		return 0
	}
	src := samples[offset : offset+count]

	w := r.w.Load()
	rd := r.r.Load()
	buf := *r.buf.Load()

	if used := int(w - rd); used+count > len(buf) {
		buf = r.grow(buf, rd, w, used+count)
	}

	mask := uint64(len(buf) - 1)
	start := int(w & mask)
	n := copy(buf[start:], src)
	copy(buf, src[n:])

	r.w.Store(w + uint64(count))
	return count
}

// grow moves [rd, w) into a slice of at least need samples and publishes it.
// The consumer may advance past rd meanwhile; every position it can still
// read is present in both slices.
func (r *Ring) grow(old []int32, rd, w uint64, need int) []int32 {
	buf := make([]int32, ceilPow2(max(need, 2*len(old))))
	oldMask := uint64(len(old) - 1)
	newMask := uint64(len(buf) - 1)
	for i := rd; i < w; i++ {
		buf[i&newMask] = old[i&oldMask]
	}
	r.buf.Store(&buf)
	return buf
}

// Read copies up to len(dst) available samples into dst and returns the
// count. Consumer side only. The rest of dst is left untouched.
func (r *Ring) Read(dst []int32) int {
	rd := r.r.Load()
	avail := int(r.w.Load() - rd)
	n := min(len(dst), avail)
	if n == 0 {
		return 0
	}

	buf := *r.buf.Load()
	mask := uint64(len(buf) - 1)
	start := int(rd & mask)
	m := copy(dst[:n], buf[start:])
	copy(dst[m:n], buf)

	r.r.Store(rd + uint64(n))
	return n
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
