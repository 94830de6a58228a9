// ABOUTME: Tests for MP3 decoder
// ABOUTME: Tests error handling for invalid streams and missing files
package decode

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestMP3Decode_InvalidData(t *testing.T) {
	_, err := MP3{}.Decode(bytes.NewReader([]byte("definitely not an mp3 stream")))
	if err == nil {
		t.Fatal("expected error for invalid mp3 data, got nil")
	}
}

func TestMP3Decode_Empty(t *testing.T) {
	_, err := MP3{}.Decode(bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error for empty mp3 data, got nil")
	}
}

func TestNewMP3File_Missing(t *testing.T) {
	_, err := NewMP3File(filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
