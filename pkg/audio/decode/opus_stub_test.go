//go:build !opus

// ABOUTME: Tests for the Opus stub decoder
// ABOUTME: Verifies builds without libopus report how to enable it
package decode

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpusDecode_Disabled(t *testing.T) {
	_, err := Opus{}.Decode(bytes.NewReader(oggOpusHead(2)))
	if !errors.Is(err, errOpusDisabled) {
		t.Fatalf("expected errOpusDisabled, got %v", err)
	}
}

func TestOpenFile_OpusDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.opus")
	if err := os.WriteFile(path, oggOpusHead(1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); !errors.Is(err, errOpusDisabled) {
		t.Fatalf("expected errOpusDisabled, got %v", err)
	}
}
