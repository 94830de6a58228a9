// ABOUTME: Consumer side of the ring buffer, called from the device thread
// ABOUTME: Fills silence on underrun and copies only with enough lookahead buffered
package stream

// pull implements output.PullFunc. It never blocks and never panics into
// the backend.
func (d *driver) pull(buf []int32) {
	defer func() {
		if r := recover(); r != nil {
			clear(buf)
			d.log.Error("pull panicked", "panic", r)
		}
	}()

	clear(buf)
	d.lastPull.Store(int64(len(buf)))

	if d.flushing.Load() || d.ring.AvailableRead() >= len(buf)*lookaheadChunks {
		n := d.ring.Read(buf)
		d.consumed.Add(int64(n))
	}
}
