// ABOUTME: WAV audio decoder
// ABOUTME: Decodes RIFF/WAVE PCM into an in-memory clip using go-audio/wav
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/go-audio/wav"
)

// WAV decodes RIFF/WAVE files
type WAV struct{}

func (WAV) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWAVFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav pcm: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := audio.Format{
		Codec:      "wav",
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   bitDepth,
	}

	samples := make([]int32, len(buf.Data))
	for i, v := range buf.Data {
		// 8-bit WAV is unsigned
		if bitDepth == 8 {
			v -= 128
		}
		samples[i] = audio.SampleFromBitDepth(v, bitDepth)
	}
	if format.Channels > 0 {
		samples = samples[:len(samples)-len(samples)%format.Channels]
	}

	return audio.NewClipSource(format, samples)
}
