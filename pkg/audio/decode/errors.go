// ABOUTME: Sentinel errors for the decoders
// ABOUTME: Callers match them with errors.Is
package decode

import "errors"

var (
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrNotWAVFile          = errors.New("not a valid WAV file")
	ErrNotAIFFFile         = errors.New("not a valid AIFF file")
	ErrNotOpusFile         = errors.New("not a valid Ogg Opus file")
	ErrEmptyStream         = errors.New("stream has no audio")
)
