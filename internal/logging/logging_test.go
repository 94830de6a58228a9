// ABOUTME: Tests for logger configuration
// ABOUTME: Checks level parsing and that file logging writes JSON records
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"error", slog.LevelError, false},
		{"warn", slog.LevelWarn, false},
		{"info", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConfigureNone(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	logger, closer, err := Configure("none", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer.Close()

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug records to be disabled")
	}
	if slog.Default() != logger {
		t.Error("expected logger to be installed as default")
	}
}

func TestConfigureFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "test.log")
	logger, closer, err := Configure("warn", path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept", "channel", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("failed to close log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d", len(lines))
	}

	var record map[string]any
	if err := json.Unmarshal(lines[0], &record); err != nil {
		t.Fatalf("expected JSON record, got %q", lines[0])
	}
	if record["msg"] != "kept" {
		t.Errorf("expected msg 'kept', got %v", record["msg"])
	}
	if record["channel"] != float64(3) {
		t.Errorf("expected channel 3, got %v", record["channel"])
	}
}

func TestConfigureInvalid(t *testing.T) {
	if _, _, err := Configure("loud", "", false); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, _, err := Configure("info", filepath.Join(t.TempDir(), "missing", "x.log"), false); err == nil {
		t.Error("expected error for unwritable log file")
	}
}

func TestFanout(t *testing.T) {
	var a, b bytes.Buffer
	h := fanout{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	logger := slog.New(h).With("id", "x")

	logger.Info("hello")
	if a.Len() == 0 {
		t.Error("expected debug handler to receive info record")
	}
	if b.Len() != 0 {
		t.Errorf("expected error handler to drop info record, got %q", b.String())
	}

	logger.Error("boom")
	if !bytes.Contains(b.Bytes(), []byte("id=x")) {
		t.Errorf("expected attrs to reach every handler, got %q", b.String())
	}
}
