// ABOUTME: Tests for playback parameter defaults
// ABOUTME: Tests zero values and explicit settings
package stream

import (
	"testing"
	"time"
)

func TestPlayParamsDefaults(t *testing.T) {
	p := PlayParams{}.withDefaults()

	if p.Times != 1 {
		t.Errorf("expected Times 1, got %d", p.Times)
	}
	if p.BufferTime != DefaultBufferTime {
		t.Errorf("expected BufferTime %v, got %v", DefaultBufferTime, p.BufferTime)
	}
	if p.Volume != 1 || p.Pitch != 1 || p.Panning != 0 {
		t.Errorf("unexpected properties: vol=%f pitch=%f pan=%f", p.Volume, p.Pitch, p.Panning)
	}
}

func TestPlayParamsKeepsExplicitValues(t *testing.T) {
	p := PlayParams{
		Times:      Infinite,
		StartTime:  time.Second,
		BufferTime: 250 * time.Millisecond,
		Volume:     0.5,
		Pitch:      2,
		Panning:    -0.5,
	}.withDefaults()

	if p.Times != Infinite || p.StartTime != time.Second || p.BufferTime != 250*time.Millisecond {
		t.Errorf("unexpected timing: %+v", p)
	}
	if p.Volume != 0.5 || p.Pitch != 2 || p.Panning != -0.5 {
		t.Errorf("unexpected properties: %+v", p)
	}
}

func TestPlayParamsMuted(t *testing.T) {
	tests := []struct {
		name   string
		params PlayParams
		want   float64
	}{
		{"zero volume defaults to unity", PlayParams{}, 1},
		{"muted", PlayParams{Muted: true}, 0},
		{"muted overrides volume", PlayParams{Muted: true, Volume: 0.7}, 0},
		{"explicit volume", PlayParams{Volume: 0.7}, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.withDefaults().Volume; got != tt.want {
				t.Errorf("expected volume %f, got %f", tt.want, got)
			}
		})
	}
}

func TestPhaseStrings(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:      "idle",
		PhaseSeek:      "seek",
		PhaseFill:      "fill",
		PhaseStreaming: "streaming",
		PhaseLoopCheck: "loop-check",
		PhaseFlushing:  "flushing",
		PhaseStopped:   "stopped",
		PhaseCancelled: "cancelled",
	}
	for phase, want := range tests {
		if phase.String() != want {
			t.Errorf("expected %q, got %q", want, phase.String())
		}
	}
	if !PhaseStopped.Terminal() || !PhaseCancelled.Terminal() || PhaseFlushing.Terminal() {
		t.Error("unexpected Terminal results")
	}
	if StatePaused.String() != "paused" || StatePlaying.String() != "playing" || StateStopped.String() != "stopped" {
		t.Error("unexpected PlayState strings")
	}
}
