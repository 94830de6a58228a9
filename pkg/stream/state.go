// ABOUTME: Driver phases and the user-facing playback state
// ABOUTME: Phases follow the seek, fill, stream, loop, flush lifecycle
package stream

// Phase is a driver state machine position
type Phase int32

const (
	// PhaseIdle is the zero value, before the driver starts
	PhaseIdle Phase = iota
	PhaseSeek
	PhaseFill
	PhaseStreaming
	PhaseLoopCheck
	PhaseFlushing
	PhaseStopped
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSeek:
		return "seek"
	case PhaseFill:
		return "fill"
	case PhaseStreaming:
		return "streaming"
	case PhaseLoopCheck:
		return "loop-check"
	case PhaseFlushing:
		return "flushing"
	case PhaseStopped:
		return "stopped"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the driver has exited
func (p Phase) Terminal() bool {
	return p == PhaseStopped || p == PhaseCancelled
}

// PlayState is what a listener would observe
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}
