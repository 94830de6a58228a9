// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, config files, overrides and validation
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
	"github.com/Resonate-Protocol/soundstream/pkg/stream"
)

func TestDefaults(t *testing.T) {
	cfg, err := Resolve(New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output != "oto" {
		t.Errorf("expected output 'oto', got '%s'", cfg.Output)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", cfg.SampleRate)
	}
	if cfg.MaxChannels != stream.DefaultMaxChannels {
		t.Errorf("expected %d max channels, got %d", stream.DefaultMaxChannels, cfg.MaxChannels)
	}
	if cfg.Buffer != stream.DefaultBufferTime {
		t.Errorf("expected buffer %v, got %v", stream.DefaultBufferTime, cfg.Buffer)
	}
	if cfg.Repeat != 1 {
		t.Errorf("expected repeat 1, got %d", cfg.Repeat)
	}
	if !cfg.Realtime {
		t.Error("expected realtime by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundstream.yaml")
	content := "output: wav\nsamplerate: 48000\nbuffer: 250ms\nrepeat: -1\nrealtime: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output != "wav" {
		t.Errorf("expected output 'wav', got '%s'", cfg.Output)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("expected sample rate 48000, got %d", cfg.SampleRate)
	}
	if cfg.Buffer != 250*time.Millisecond {
		t.Errorf("expected buffer 250ms, got %v", cfg.Buffer)
	}
	if cfg.Repeat != stream.Infinite {
		t.Errorf("expected infinite repeat, got %d", cfg.Repeat)
	}
	if got := cfg.OutputConfig(nil).Speed; got != FastSpeed {
		t.Errorf("expected speed %v, got %v", float64(FastSpeed), got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected missing config file to be tolerated, got %v", err)
	}
	if cfg.Output != "oto" {
		t.Errorf("expected defaults, got output '%s'", cfg.Output)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output: [wav\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(New(), path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestOverride(t *testing.T) {
	v := New()
	v.Set("output", "null")
	v.Set("volume", 0.5)

	cfg, err := Resolve(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "null" {
		t.Errorf("expected output 'null', got '%s'", cfg.Output)
	}
	if cfg.Volume != 0.5 {
		t.Errorf("expected volume 0.5, got %v", cfg.Volume)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown output", "output", "alsa"},
		{"zero rate", "samplerate", 0},
		{"zero channels", "channels", 0},
		{"bad bit depth", "bitdepth", 8},
		{"zero max channels", "maxchannels", 0},
		{"zero buffer", "buffer", "0s"},
		{"zero repeat", "repeat", 0},
		{"repeat below infinite", "repeat", -2},
		{"negative volume", "volume", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.val)
			if _, err := Resolve(v); err == nil {
				t.Errorf("expected error for %s=%v", tt.key, tt.val)
			}
		})
	}
}

func TestUnknownOutputIsWrapped(t *testing.T) {
	v := New()
	v.Set("output", "alsa")
	_, err := Resolve(v)
	if !errors.Is(err, output.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestOutputConfig(t *testing.T) {
	cfg, err := Resolve(New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oc := cfg.OutputConfig(nil)
	if oc.SampleRate != 44100 || oc.Channels != 2 || oc.BitDepth != 16 {
		t.Errorf("expected 44100/2/16, got %d/%d/%d", oc.SampleRate, oc.Channels, oc.BitDepth)
	}
	if oc.Speed != 1 {
		t.Errorf("expected realtime speed 1, got %v", oc.Speed)
	}
	if oc.Path != "soundstream.wav" {
		t.Errorf("expected wav path 'soundstream.wav', got '%s'", oc.Path)
	}
}
