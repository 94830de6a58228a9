// ABOUTME: User-facing control surface of one playback
// ABOUTME: Forwards output properties and cursor position, and requests stops
package stream

import (
	"context"
	"time"
)

// Handle controls one playing channel. All methods are safe for
// concurrent use and remain callable after the playback ended.
type Handle struct {
	d *driver
}

// Name returns "SoundChannel-<sound>-<channel id>"
func (h *Handle) Name() string { return h.d.name }

// ID returns a unique id for this playback, used in logs
func (h *Handle) ID() string { return h.d.id }

// ChannelID returns the pool id held while the playback runs
func (h *Handle) ChannelID() int { return h.d.channelID }

// Channels returns the source channel count
func (h *Handle) Channels() int { return h.d.ring.Channels() }

// Rate returns the source sample rate
func (h *Handle) Rate() int { return h.d.src.Rate() }

func (h *Handle) Volume() float64     { return h.d.out.Volume() }
func (h *Handle) SetVolume(v float64) { h.d.out.SetVolume(v) }

func (h *Handle) Pitch() float64     { return h.d.out.Pitch() }
func (h *Handle) SetPitch(p float64) { h.d.out.SetPitch(p) }

func (h *Handle) Panning() float64       { return h.d.out.Panning() }
func (h *Handle) SetPanning(pan float64) { h.d.out.SetPanning(pan) }

// Current returns the cursor position of the next source read. Audio
// already buffered is ahead of what is audible.
func (h *Handle) Current() time.Duration {
	return h.d.src.CurrentTime()
}

// SetCurrent seeks the cursor. Samples already buffered still play.
func (h *Handle) SetCurrent(t time.Duration) error {
	return h.d.src.SetCurrentTime(t)
}

// Total returns the source length
func (h *Handle) Total() time.Duration {
	return h.d.src.TotalLength()
}

// State derives the listener-visible state from the output and driver
func (h *Handle) State() PlayState {
	if !h.d.running.Load() {
		return StateStopped
	}
	if h.d.out.Paused() {
		return StatePaused
	}
	return StatePlaying
}

// Phase returns the driver's current phase
func (h *Handle) Phase() Phase {
	return h.d.Phase()
}

// Pause silences the output; the driver idles until resumed
func (h *Handle) Pause() {
	h.d.out.SetPaused(true)
}

// Resume restarts pulling from the buffer
func (h *Handle) Resume() {
	h.d.out.SetPaused(false)
}

// Stop requests cancellation. It returns immediately and is a no-op once
// the playback has ended.
func (h *Handle) Stop() {
	h.d.cancel()
}

// Done is closed after the finalizer ran and the channel id was released
func (h *Handle) Done() <-chan struct{} {
	return h.d.done
}

// Wait blocks until the playback ends or ctx is done
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.d.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the failure that ended the playback. It is nil while
// running, after a normal finish and after Stop.
func (h *Handle) Err() error {
	select {
	case <-h.d.done:
		return h.d.err
	default:
		return nil
	}
}

// Produced returns the number of samples written to the buffer
func (h *Handle) Produced() int64 {
	return h.d.produced.Load()
}

// Consumed returns the number of samples the output has taken
func (h *Handle) Consumed() int64 {
	return h.d.consumed.Load()
}

// Buffered returns samples produced but not yet consumed
func (h *Handle) Buffered() int {
	return h.d.ring.AvailableRead()
}
