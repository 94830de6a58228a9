// ABOUTME: WAV file encoder
// ABOUTME: Writes int32 samples to RIFF/WAVE through go-audio/wav
package encode

import (
	"fmt"
	"io"
	"os"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag
const wavFormatPCM = 1

// WAVWriter streams PCM samples into a WAV container
type WAVWriter struct {
	enc      *wav.Encoder
	file     *os.File
	buf      *goaudio.IntBuffer
	bitDepth int
	frames   int64
	channels int
}

// NewWAVWriter writes to w; the header is finalized on Close
func NewWAVWriter(w io.WriteSeeker, format audio.Format) (*WAVWriter, error) {
	switch format.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", format.BitDepth)
	}
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid wav format: %dHz %dch", format.SampleRate, format.Channels)
	}

	return &WAVWriter{
		enc:      wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, wavFormatPCM),
		bitDepth: format.BitDepth,
		channels: format.Channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: format.BitDepth,
		},
	}, nil
}

// CreateWAV creates (or truncates) the file at path
func CreateWAV(path string, format audio.Format) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav file: %w", err)
	}
	w, err := NewWAVWriter(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// Encode writes samples; the returned slice is always nil since data goes to the writer
func (w *WAVWriter) Encode(samples []int32) ([]byte, error) {
	return nil, w.Write(samples)
}

// Write appends interleaved samples
func (w *WAVWriter) Write(samples []int32) error {
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = audio.SampleToBitDepth(s, w.bitDepth)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	w.frames += int64(len(samples) / w.channels)
	return nil
}

// Frames returns the number of frames written so far
func (w *WAVWriter) Frames() int64 {
	return w.frames
}

// Close finalizes the header and closes the file when the writer owns it
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
