// ABOUTME: AIFF audio decoder
// ABOUTME: Decodes AIFF PCM into an in-memory clip using go-audio/aiff
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// aiffReader is the part of aiff.Decoder used here
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// AIFF decodes AIFF files
type AIFF struct{}

func (AIFF) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAIFFFile
	}
	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return decodeAIFF(dec, bitDepth)
}

func decodeAIFF(dec aiffReader, bitDepth int) (audio.Source, error) {
	f := dec.Format()
	if f == nil || f.NumChannels == 0 {
		return nil, ErrEmptyStream
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, 4096*f.NumChannels),
		Format: f,
	}

	var samples []int32
	for {
		n, err := dec.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			samples = append(samples, audio.SampleFromBitDepth(v, bitDepth))
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read aiff pcm: %w", err)
		}
		if err == io.EOF || n == 0 {
			break
		}
	}
	samples = samples[:len(samples)-len(samples)%f.NumChannels]

	return audio.NewClipSource(audio.Format{
		Codec:      "aiff",
		SampleRate: f.SampleRate,
		Channels:   f.NumChannels,
		BitDepth:   bitDepth,
	}, samples)
}
