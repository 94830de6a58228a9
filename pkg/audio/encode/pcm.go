// ABOUTME: PCM audio encoder
// ABOUTME: Packs int32 samples into 16, 24 or 32-bit little-endian PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
)

// PCMEncoder encodes PCM audio
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	switch format.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", format.BitDepth)
	}

	return &PCMEncoder{
		bitDepth: format.BitDepth,
	}, nil
}

// BytesPerSample returns the encoded size of one sample
func (e *PCMEncoder) BytesPerSample() int {
	return e.bitDepth / 8
}

// Encode converts int32 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	output := make([]byte, len(samples)*e.BytesPerSample())
	e.EncodeInto(output, samples)
	return output, nil
}

// EncodeInto packs samples into dst without allocating and returns the
// number of bytes written. dst must hold len(samples)*BytesPerSample bytes.
func (e *PCMEncoder) EncodeInto(dst []byte, samples []int32) int {
	switch e.bitDepth {
	case 24:
		for i, sample := range samples {
			b := audio.SampleTo24Bit(sample)
			dst[i*3] = b[0]
			dst[i*3+1] = b[1]
			dst[i*3+2] = b[2]
		}
	case 32:
		for i, sample := range samples {
			// Shift 24-bit value to the upper bits of the 32-bit container
			binary.LittleEndian.PutUint32(dst[i*4:], uint32(sample<<8))
		}
	default:
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(audio.SampleToInt16(sample)))
		}
	}
	return len(samples) * e.BytesPerSample()
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
