// ABOUTME: Decoder interface definition and format selection
// ABOUTME: Maps file extensions to decoders producing audio sources
package decode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
)

// Decoder turns an encoded stream into a sample source
type Decoder interface {
	// Decode reads r and returns a cursor positioned at the start
	Decode(r io.ReadSeeker) (audio.Source, error)
}

// ForPath picks a decoder from the file extension
func ForPath(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return MP3{}, nil
	case ".wav", ".wave":
		return WAV{}, nil
	case ".flac":
		return FLAC{}, nil
	case ".ogg", ".oga":
		return Vorbis{}, nil
	case ".aif", ".aiff":
		return AIFF{}, nil
	case ".opus":
		return Opus{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// OpenFile decodes the file at path. MP3 files are streamed from disk and
// reopened on Clone; every other format is decoded into memory.
func OpenFile(path string) (audio.Source, error) {
	dec, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	if _, ok := dec.(MP3); ok {
		return NewMP3File(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return src, nil
}
