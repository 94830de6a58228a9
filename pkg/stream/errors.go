// ABOUTME: Sentinel errors for the streaming engine
// ABOUTME: Callers match them with errors.Is
package stream

import "errors"

var (
	// ErrNoChannels is returned when every channel id is in use
	ErrNoChannels = errors.New("no free playback channels")

	// ErrEngineClosed is returned by Play after Close
	ErrEngineClosed = errors.New("engine closed")

	// ErrInvalidSource is returned for sources without a usable layout
	ErrInvalidSource = errors.New("invalid audio source")
)
