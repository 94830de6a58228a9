// ABOUTME: Lock-free playback properties shared by every Output implementation
// ABOUTME: Paused, volume, pitch and panning are read on the device thread
package output

import (
	"math"
	"sync"
	"sync/atomic"
)

// props implements the property half of Output. Floats are stored as bits
// so the device callback never takes a lock.
type props struct {
	paused  atomic.Bool
	volume  atomic.Uint64
	pitch   atomic.Uint64
	panning atomic.Uint64

	errMu sync.Mutex
	err   error
}

func newProps() *props {
	p := &props{}
	p.volume.Store(math.Float64bits(1))
	p.pitch.Store(math.Float64bits(1))
	return p
}

func (p *props) Paused() bool          { return p.paused.Load() }
func (p *props) SetPaused(paused bool) { p.paused.Store(paused) }

func (p *props) Volume() float64 { return math.Float64frombits(p.volume.Load()) }

// SetVolume clamps negative volumes to 0
func (p *props) SetVolume(volume float64) {
	if volume < 0 || math.IsNaN(volume) {
		volume = 0
	}
	p.volume.Store(math.Float64bits(volume))
}

func (p *props) Pitch() float64 { return math.Float64frombits(p.pitch.Load()) }

// SetPitch ignores non-positive values
func (p *props) SetPitch(pitch float64) {
	if pitch <= 0 || math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		return
	}
	p.pitch.Store(math.Float64bits(pitch))
}

func (p *props) Panning() float64 { return math.Float64frombits(p.panning.Load()) }

// SetPanning clamps to [-1, 1]
func (p *props) SetPanning(pan float64) {
	switch {
	case math.IsNaN(pan):
		pan = 0
	case pan < -1:
		pan = -1
	case pan > 1:
		pan = 1
	}
	p.panning.Store(math.Float64bits(pan))
}

// Err returns the first recorded failure
func (p *props) Err() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.err
}

// fail records err unless a failure is already recorded
func (p *props) fail(err error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	if p.err == nil {
		p.err = err
	}
}
