//go:build !opus

// ABOUTME: Stub Opus decoder when libopus is not available
// ABOUTME: Build with -tags opus to enable Ogg Opus playback
package decode

import (
	"errors"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
)

var errOpusDisabled = errors.New("Opus support not enabled (build with -tags opus)")

// Opus is unavailable in this build
type Opus struct{}

func (Opus) Decode(r io.ReadSeeker) (audio.Source, error) {
	if _, err := opusChannels(r); err != nil {
		return nil, err
	}
	return nil, errOpusDisabled
}
