// ABOUTME: Ogg Vorbis audio decoder
// ABOUTME: Decodes Vorbis into an in-memory clip using jfreymuth/oggvorbis
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Vorbis decodes Ogg Vorbis streams
type Vorbis struct{}

func (Vorbis) Decode(r io.ReadSeeker) (audio.Source, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vorbis: %w", err)
	}

	samples := make([]int32, len(data))
	for i, v := range data {
		samples[i] = audio.SampleFromFloat32(v)
	}
	if format.Channels > 0 {
		samples = samples[:len(samples)-len(samples)%format.Channels]
	}

	return audio.NewClipSource(audio.Format{
		Codec:      "vorbis",
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		BitDepth:   24,
	}, samples)
}
