// ABOUTME: Per-channel decode and pacing loop feeding the ring buffer
// ABOUTME: Runs seek, fill, stream, loop-check and flush phases with a guaranteed finalizer
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
)

const (
	// ChunkFrames is the number of frames moved per source read
	ChunkFrames = 2048

	// PollInterval bounds every wait in the driver
	PollInterval = 2 * time.Millisecond

	// lookaheadChunks is how many pulls' worth of audio must be buffered
	// before the pull callback copies from the ring
	lookaheadChunks = 6
)

// driver owns one playback: its cloned cursor, ring and output
type driver struct {
	name      string
	id        string
	channelID int
	log       *slog.Logger

	src        audio.Source
	ownsSource bool
	out        output.Output
	ring       *Ring
	params     PlayParams
	minBuf     int
	chunk      []int32

	phase    atomic.Int32
	running  atomic.Bool
	flushing atomic.Bool
	lastPull atomic.Int64
	produced atomic.Int64
	consumed atomic.Int64

	cancel     context.CancelFunc
	release    func(id int)
	onComplete func()
	onExit     func()
	onError    func(name string, err error)

	done    chan struct{}
	errOnce sync.Once
	err     error
}

func (d *driver) Phase() Phase {
	return Phase(d.phase.Load())
}

func (d *driver) setPhase(p Phase) {
	if Phase(d.phase.Swap(int32(p))) == p {
		return
	}
	d.log.Debug("phase", "phase", p)
	if d.params.OnState != nil {
		d.params.OnState(p)
	}
}

// ceiling is the buffered amount that pauses production. It always leaves
// room above the pull lookahead so the consumer can drain.
func (d *driver) ceiling() int {
	return max(2*d.minBuf, int(d.lastPull.Load())*(lookaheadChunks+1))
}

func (d *driver) run(ctx context.Context) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("driver panic: %v", r)
		}
		d.finish(err)
	}()

	err = d.loop(ctx)
}

func (d *driver) loop(ctx context.Context) error {
	started := false
	remaining := d.params.Times

	for first := true; ; first = false {
		d.setPhase(PhaseSeek)
		if err := d.seek(first); err != nil {
			return err
		}

		d.setPhase(PhaseFill)
		if started {
			d.setPhase(PhaseStreaming)
		}
		n, err := d.stream(ctx, &started)
		if err != nil {
			return err
		}

		d.setPhase(PhaseLoopCheck)
		if remaining != Infinite {
			remaining--
			if remaining <= 0 {
				break
			}
		}

		// An empty traversal would otherwise spin through seek
		if n == 0 {
			if err := d.wait(ctx); err != nil {
				return err
			}
		}
	}

	d.flushing.Store(true)
	d.setPhase(PhaseFlushing)
	for d.ring.AvailableRead() > 0 {
		if err := d.wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *driver) seek(first bool) error {
	var err error
	if first {
		err = d.src.SetCurrentTime(d.params.StartTime)
	} else {
		err = d.src.SetPosition(0)
	}
	if err != nil {
		return fmt.Errorf("failed to seek source: %w", err)
	}
	return nil
}

// stream moves one traversal of the source into the ring and returns the
// number of samples written
func (d *driver) stream(ctx context.Context, started *bool) (int, error) {
	total := 0
	for {
		if err := d.check(ctx); err != nil {
			return total, err
		}

		for d.out.Paused() {
			if err := d.wait(ctx); err != nil {
				return total, err
			}
		}

		if d.src.Finished() {
			if !*started {
				if err := d.start(started); err != nil {
					return total, err
				}
			}
			return total, nil
		}

		n, err := d.src.Read(d.chunk, 0, len(d.chunk))
		if err != nil {
			return total, fmt.Errorf("failed to read source: %w", err)
		}
		if n > 0 {
			d.ring.Write(d.chunk, 0, n)
			d.produced.Add(int64(n))
			total += n
		}

		if !*started && (d.src.Finished() || d.ring.AvailableRead() >= d.minBuf) {
			if err := d.start(started); err != nil {
				return total, err
			}
		}

		for d.ring.AvailableRead() >= d.ceiling() {
			if err := d.wait(ctx); err != nil {
				return total, err
			}
		}

		if n == 0 && !d.src.Finished() {
			if err := d.wait(ctx); err != nil {
				return total, err
			}
		}
	}
}

func (d *driver) start(started *bool) error {
	if err := d.out.Start(); err != nil {
		return fmt.Errorf("failed to start output: %w", err)
	}
	*started = true
	d.setPhase(PhaseStreaming)
	d.log.Debug("output started", "buffered", d.ring.AvailableRead())
	return nil
}

// check reports cancellation and asynchronous output failures
func (d *driver) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.out.Err(); err != nil {
		return fmt.Errorf("output failed: %w", err)
	}
	return nil
}

// wait is the driver's only suspend point
func (d *driver) wait(ctx context.Context) error {
	if err := sleepCtx(ctx, PollInterval); err != nil {
		return err
	}
	return d.check(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// finish runs on every exit path
func (d *driver) finish(err error) {
	cancelled := err != nil
	if cancelled {
		d.setPhase(PhaseCancelled)
	} else {
		d.setPhase(PhaseStopped)
	}

	if stopErr := d.out.Stop(); stopErr != nil {
		d.log.Warn("failed to stop output", "err", stopErr)
	}
	if d.ownsSource {
		if closeErr := d.src.Close(); closeErr != nil {
			d.log.Warn("failed to close source", "err", closeErr)
		}
	}
	d.running.Store(false)

	if cancelled {
		if !isCancellation(err) {
			d.setErr(err)
			d.log.Error("playback failed", "err", err)
			if d.onError != nil {
				d.safeCall("on error", func() { d.onError(d.name, err) })
			}
		} else {
			d.log.Debug("playback cancelled")
		}
		if d.params.OnCancel != nil {
			d.safeCall("on cancel", d.params.OnCancel)
		}
	} else {
		d.log.Debug("playback finished", "samples", d.produced.Load())
		if d.params.OnFinish != nil {
			d.safeCall("on finish", d.params.OnFinish)
		}
	}
	if d.onComplete != nil {
		d.safeCall("on complete", d.onComplete)
	}

	d.release(d.channelID)
	d.cancel()
	if d.onExit != nil {
		d.onExit()
	}
	close(d.done)
}

// isCancellation reports whether err is a stop request rather than a failure
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (d *driver) setErr(err error) {
	d.errOnce.Do(func() { d.err = err })
}

// safeCall keeps a panicking callback from skipping the rest of finish
func (d *driver) safeCall(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("callback panicked", "callback", what, "panic", r)
		}
	}()
	fn()
}
