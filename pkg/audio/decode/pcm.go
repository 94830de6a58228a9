// ABOUTME: Headerless PCM decoder
// ABOUTME: Unpacks 16, 24 or 32-bit little-endian samples of a caller-supplied format
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/soundstream/pkg/audio"
)

// PCM decodes a headerless PCM stream. The stream carries no header, so
// rate, channels and bit depth come from Format.
type PCM struct {
	Format audio.Format
}

// Decode reads the whole stream and returns a cursor over it. A trailing
// partial frame is dropped.
func (p PCM) Decode(r io.ReadSeeker) (audio.Source, error) {
	format := p.Format
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid pcm layout: %dch %dHz", format.Channels, format.SampleRate)
	}
	width, err := sampleWidth(format.BitDepth)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcm data: %w", err)
	}

	frameBytes := width * format.Channels
	data = data[:len(data)-len(data)%frameBytes]

	samples := make([]int32, len(data)/width)
	unpackPCM(samples, data, format.BitDepth)

	format.Codec = "pcm"
	format.BitDepth = 24
	return audio.NewClipSource(format, samples)
}

func sampleWidth(bitDepth int) (int, error) {
	switch bitDepth {
	case 16, 24, 32:
		return bitDepth / 8, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", bitDepth)
	}
}

// unpackPCM is the inverse of encode.PCMEncoder.EncodeInto
func unpackPCM(dst []int32, data []byte, bitDepth int) {
	switch bitDepth {
	case 24:
		for i := range dst {
			dst[i] = audio.SampleFrom24Bit([3]byte{data[i*3], data[i*3+1], data[i*3+2]})
		}
	case 32:
		for i := range dst {
			dst[i] = int32(binary.LittleEndian.Uint32(data[i*4:])) >> 8
		}
	default:
		for i := range dst {
			dst[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	}
}
