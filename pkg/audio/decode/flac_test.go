// ABOUTME: Tests for FLAC decoder
// ABOUTME: Tests error handling for invalid streams
package decode

import (
	"bytes"
	"testing"
)

func TestFLACDecode_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", []byte("RIFF....WAVEfmt ")},
		{"truncated header", []byte("fLaC")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := FLAC{}.Decode(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if src != nil {
				t.Error("expected nil source on error")
			}
		})
	}
}
