// ABOUTME: Output backend driven by explicit Pull calls
// ABOUTME: Lets tests and offline tools step a channel's device clock by hand
package output

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrCreateFailed is returned by Manual.Create when FailCreate is set
var ErrCreateFailed = errors.New("manual output create failed")

// Manual creates outputs that only pull when asked to. It applies no
// rate conversion or gain: Pull returns exactly what the channel provided.
type Manual struct {
	mu         sync.Mutex
	outputs    []*ManualOutput
	failCreate bool
	startErr   error
	stopErr    error
	closed     bool
}

// NewManual creates a manual backend
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Name() string { return "manual" }

// FailCreate makes subsequent Create calls fail
func (m *Manual) FailCreate(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCreate = fail
}

// FailStart makes outputs created afterwards return err from Start
func (m *Manual) FailStart(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

// FailStop makes outputs created afterwards return err from Stop
func (m *Manual) FailStop(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopErr = err
}

func (m *Manual) Create(ctx context.Context, channels, rate int, pull PullFunc) (Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return nil, ErrCreateFailed
	}

	out := &ManualOutput{
		props:    newProps(),
		pull:     pull,
		channels: channels,
		rate:     rate,
		startErr: m.startErr,
		stopErr:  m.stopErr,
	}
	m.outputs = append(m.outputs, out)
	return out, nil
}

// Outputs returns every output created so far
func (m *Manual) Outputs() []*ManualOutput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ManualOutput(nil), m.outputs...)
}

// Last returns the most recently created output, or nil
func (m *Manual) Last() *ManualOutput {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.outputs) == 0 {
		return nil
	}
	return m.outputs[len(m.outputs)-1]
}

func (m *Manual) Close() error {
	m.mu.Lock()
	m.closed = true
	outputs := append([]*ManualOutput(nil), m.outputs...)
	m.mu.Unlock()

	for _, o := range outputs {
		o.Stop()
	}
	return nil
}

// Closed reports whether Close was called
func (m *Manual) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ManualOutput is one channel on a Manual backend
type ManualOutput struct {
	*props
	pull     PullFunc
	channels int
	rate     int
	starts   atomic.Int32
	stopped  atomic.Bool
	startErr error
	stopErr  error
}

// Channels returns the stream's channel count
func (o *ManualOutput) Channels() int { return o.channels }

// Rate returns the stream's sample rate
func (o *ManualOutput) Rate() int { return o.rate }

// Pull requests frames from the channel. A paused output returns silence
// without pulling.
func (o *ManualOutput) Pull(frames int) []int32 {
	buf := make([]int32, frames*o.channels)
	if o.Paused() {
		return buf
	}
	o.pull(buf)
	return buf
}

// PullInto is Pull with a caller-owned buffer
func (o *ManualOutput) PullInto(buf []int32) {
	if o.Paused() {
		clear(buf)
		return
	}
	o.pull(buf)
}

func (o *ManualOutput) Start() error {
	o.starts.Add(1)
	return o.startErr
}

func (o *ManualOutput) Stop() error {
	o.stopped.Store(true)
	return o.stopErr
}

// Started reports whether Start was called
func (o *ManualOutput) Started() bool { return o.starts.Load() > 0 }

// StartCount returns how many times Start was called
func (o *ManualOutput) StartCount() int { return int(o.starts.Load()) }

// Stopped reports whether Stop was called
func (o *ManualOutput) Stopped() bool { return o.stopped.Load() }

// Fail simulates an asynchronous device failure reported through Err
func (o *ManualOutput) Fail(err error) {
	o.fail(err)
}
