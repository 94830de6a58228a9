// ABOUTME: Per-playback request parameters
// ABOUTME: Repeat count, start offset, buffering target, initial output properties and callbacks
package stream

import "time"

// Infinite repeats a playback until it is stopped
const Infinite = -1

// DefaultBufferTime is the audio buffered before output starts
const DefaultBufferTime = 100 * time.Millisecond

// PlayParams configures one playback. Zero values select defaults.
type PlayParams struct {
	Times      int           // Traversals of the source; Infinite loops forever (default: 1)
	StartTime  time.Duration // Offset of the first traversal; later ones start at 0
	BufferTime time.Duration // Buffered audio before output starts (default: 100ms)

	Volume  float64 // Initial linear gain (default: 1.0)
	Pitch   float64 // Initial playback rate factor (default: 1.0)
	Panning float64 // Initial pan, -1 left to 1 right
	Paused  bool    // Start with the output paused
	Muted   bool    // Start at zero gain, overriding Volume

	OnFinish func()      // Called once after the last traversal has been played
	OnCancel func()      // Called once when stopped early or on failure
	OnState  func(Phase) // Called on every driver phase transition, from the driver goroutine
}

func (p PlayParams) withDefaults() PlayParams {
	if p.Times == 0 {
		p.Times = 1
	}
	if p.BufferTime <= 0 {
		p.BufferTime = DefaultBufferTime
	}
	if p.Muted {
		p.Volume = 0
	} else if p.Volume == 0 {
		p.Volume = 1
	}
	if p.Pitch <= 0 {
		p.Pitch = 1
	}
	if p.StartTime < 0 {
		p.StartTime = 0
	}
	return p
}
