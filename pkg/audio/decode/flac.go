// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC frames into an in-memory clip using mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLAC decodes FLAC streams
type FLAC struct{}

func (FLAC) Decode(r io.ReadSeeker) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	format := audio.Format{
		Codec:      "flac",
		SampleRate: int(info.SampleRate),
		Channels:   int(info.NChannels),
		BitDepth:   int(info.BitsPerSample),
	}
	if format.Channels == 0 {
		return nil, ErrEmptyStream
	}

	samples := make([]int32, 0, int(info.NSamples)*format.Channels)
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		// Interleave subframes
		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < format.Channels; ch++ {
				sample := frame.Subframes[ch].Samples[i]
				samples = append(samples, audio.SampleFromBitDepth(int(sample), format.BitDepth))
			}
		}
	}

	return audio.NewClipSource(format, samples)
}
