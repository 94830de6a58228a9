// ABOUTME: Streaming engine that starts and tracks playbacks on one backend
// ABOUTME: Owns the channel id pool, per-channel drivers and their lifetimes
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
	"github.com/google/uuid"
)

// Config holds engine configuration
type Config struct {
	Backend     output.Backend               // Output backend (required)
	MaxChannels int                          // Concurrent playbacks (default: 32)
	Logger      *slog.Logger                 // Logger (default: slog.Default())
	OnError     func(name string, err error) // Called when a playback fails
}

// Engine plays sources on a backend. Channels are independent: each has
// its own driver goroutine, ring and output.
type Engine struct {
	config  Config
	backend output.Backend
	alloc   *ChannelAllocator
	log     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	active map[*Handle]struct{}
	closed bool
}

// NewEngine creates an engine on config.Backend
func NewEngine(config Config) (*Engine, error) {
	if config.Backend == nil {
		return nil, fmt.Errorf("engine requires an output backend")
	}
	if config.MaxChannels <= 0 {
		config.MaxChannels = DefaultMaxChannels
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		config:  config,
		backend: config.Backend,
		alloc:   NewChannelAllocator(config.MaxChannels),
		log:     config.Logger,
		ctx:     ctx,
		cancel:  cancel,
		active:  make(map[*Handle]struct{}),
	}, nil
}

// Backend returns the output backend
func (e *Engine) Backend() output.Backend {
	return e.backend
}

// Channels returns the id pool
func (e *Engine) Channels() *ChannelAllocator {
	return e.alloc
}

// Play starts an independent playback of src. The engine plays a clone,
// so src can be played again concurrently and stays owned by the caller.
func (e *Engine) Play(ctx context.Context, name string, src audio.Source, params PlayParams) (*Handle, error) {
	clone, err := src.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", name, err)
	}
	return e.start(ctx, name, clone, true, params, nil)
}

// PlayStream plays src itself. The source is closed when playback ends
// only if closeStream is true.
func (e *Engine) PlayStream(ctx context.Context, name string, src audio.Source, params PlayParams, closeStream bool) (*Handle, error) {
	return e.start(ctx, name, src, closeStream, params, nil)
}

func (e *Engine) start(ctx context.Context, name string, src audio.Source, owns bool, params PlayParams, onComplete func()) (h *Handle, err error) {
	defer func() {
		if err != nil && owns {
			src.Close()
		}
	}()

	channels, rate := src.Channels(), src.Rate()
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("%w: %s has %d channels at %dHz", ErrInvalidSource, name, channels, rate)
	}

	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return nil, ErrEngineClosed
	}

	channelID, err := e.alloc.Acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to play %s: %w", name, err)
	}

	params = params.withDefaults()
	minBuf := int(audio.DurationToFrames(rate, params.BufferTime)) * channels
	id := uuid.New().String()
	channelName := fmt.Sprintf("SoundChannel-%s-%d", name, channelID)

	pctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(e.ctx, cancel)

	d := &driver{
		name:       channelName,
		id:         id,
		channelID:  channelID,
		log:        e.log.With("channel", channelName, "id", id),
		src:        src,
		ownsSource: owns,
		ring:       NewRing(channels, 2*minBuf+ChunkFrames*channels),
		params:     params,
		minBuf:     minBuf,
		chunk:      make([]int32, ChunkFrames*channels),
		cancel: func() {
			stop()
			cancel()
		},
		release:    e.alloc.Release,
		onComplete: onComplete,
		onError:    e.config.OnError,
		done:       make(chan struct{}),
	}
	h = &Handle{d: d}

	out, err := e.backend.Create(pctx, channels, rate, d.pull)
	if err != nil {
		d.cancel()
		e.alloc.Release(channelID)
		return nil, fmt.Errorf("failed to create output for %s: %w", channelName, err)
	}
	out.SetVolume(params.Volume)
	out.SetPitch(params.Pitch)
	out.SetPanning(params.Panning)
	out.SetPaused(params.Paused)
	d.out = out

	d.onExit = func() {
		e.mu.Lock()
		delete(e.active, h)
		e.mu.Unlock()
		e.wg.Done()
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		out.Stop()
		d.cancel()
		e.alloc.Release(channelID)
		return nil, ErrEngineClosed
	}
	e.active[h] = struct{}{}
	e.wg.Add(1)
	e.mu.Unlock()

	d.log.Info("playback started",
		"channels", channels, "rate", rate, "times", params.Times, "start", params.StartTime, "min_buffer", minBuf)
	d.running.Store(true)
	go d.run(pctx)
	return h, nil
}

// Active returns the running playbacks ordered by channel id
func (e *Engine) Active() []*Handle {
	e.mu.Lock()
	handles := make([]*Handle, 0, len(e.active))
	for h := range e.active {
		handles = append(handles, h)
	}
	e.mu.Unlock()

	sort.Slice(handles, func(i, j int) bool {
		return handles[i].ChannelID() < handles[j].ChannelID()
	})
	return handles
}

// StopAll requests every running playback to stop
func (e *Engine) StopAll() {
	for _, h := range e.Active() {
		h.Stop()
	}
}

// Close stops all playbacks, waits for their finalizers and closes the backend
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()

	if err := e.backend.Close(); err != nil {
		return fmt.Errorf("failed to close %s backend: %w", e.backend.Name(), err)
	}
	return nil
}
