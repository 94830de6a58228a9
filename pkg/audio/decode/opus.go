//go:build opus

// ABOUTME: Ogg Opus audio decoder
// ABOUTME: Decodes Ogg Opus files into an in-memory clip using libopusfile
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// Opus decodes Ogg Opus streams. libopusfile always outputs 48kHz.
type Opus struct{}

func (Opus) Decode(r io.ReadSeeker) (audio.Source, error) {
	channels, err := opusChannels(r)
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Opus: %w", err)
	}
	defer stream.Close()

	format := audio.Format{
		Codec:      "opus",
		SampleRate: 48000,
		Channels:   channels,
		BitDepth:   16,
	}

	// Max opus frame is 120ms at 48kHz
	pcm := make([]int16, 5760*channels)
	var samples []int32
	for {
		n, err := stream.Read(pcm)
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read Opus packet: %w", err)
		}
		for _, s := range pcm[:n*channels] {
			samples = append(samples, audio.SampleFromInt16(s))
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmptyStream
	}
	return audio.NewClipSource(format, samples)
}
