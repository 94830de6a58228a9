// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats, sample conversions and frame/time helpers
package audio

import (
	"math"
	"time"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes a PCM stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// FrameDuration converts a frame count at this format's rate to a duration
func (f Format) FrameDuration(frames int64) time.Duration {
	return FramesToDuration(f.SampleRate, frames)
}

// DurationFrames converts a duration to a frame count at this format's rate
func (f Format) DurationFrames(d time.Duration) int64 {
	return DurationToFrames(f.SampleRate, d)
}

// FramesToDuration converts frames at the given rate to a duration
func FramesToDuration(rate int, frames int64) time.Duration {
	if rate <= 0 {
		return 0
	}
	secs := frames / int64(rate)
	rem := frames % int64(rate)
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(rate)
}

// DurationToFrames converts a duration to frames at the given rate, rounding down
func DurationToFrames(rate int, d time.Duration) int64 {
	if rate <= 0 || d <= 0 {
		return 0
	}
	secs := int64(d / time.Second)
	rem := int64(d % time.Second)
	return secs*int64(rate) + rem*int64(rate)/int64(time.Second)
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}

// SampleFromFloat32 converts a [-1, 1] float sample to the 24-bit range
func SampleFromFloat32(sample float32) int32 {
	v := math.Round(float64(sample) * Max24Bit)
	return ClampSample(int64(v))
}

// SampleToFloat32 converts a 24-bit range sample to [-1, 1]
func SampleToFloat32(sample int32) float32 {
	return float32(sample) / float32(Max24Bit+1)
}

// SampleFromBitDepth rescales an integer sample of the given bit depth to the 24-bit range
func SampleFromBitDepth(sample int, bitDepth int) int32 {
	switch {
	case bitDepth == 24:
		return int32(sample)
	case bitDepth < 24:
		return int32(sample) << (24 - bitDepth)
	default:
		return int32(sample >> (bitDepth - 24))
	}
}

// SampleToBitDepth rescales a 24-bit range sample to an integer of the given bit depth
func SampleToBitDepth(sample int32, bitDepth int) int {
	switch {
	case bitDepth == 24:
		return int(sample)
	case bitDepth < 24:
		return int(sample >> (24 - bitDepth))
	default:
		return int(sample) << (bitDepth - 24)
	}
}

// ClampSample clamps a widened sample to the 24-bit range
func ClampSample(v int64) int32 {
	if v > Max24Bit {
		return Max24Bit
	}
	if v < Min24Bit {
		return Min24Bit
	}
	return int32(v)
}
