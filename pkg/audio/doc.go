// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, the Source cursor interface and in-memory sources
// Package audio provides fundamental audio types for the streaming engine.
//
// This package defines:
//   - Format: Describes a PCM stream (sample rate, channels, bit depth)
//   - Source: A pull-based, seekable, cloneable cursor over decoded samples
//   - Clip / ClipSource: Fully decoded audio shared between cursors
//   - ToneSource: A sine generator, handy for checks and tests
//
// Samples are int32 values in the 24-bit range. Helpers convert between
// 16-bit, 24-bit, float and arbitrary integer bit depths.
//
// Example:
//
//	src, err := audio.NewClipSource(audio.Format{SampleRate: 44100, Channels: 2}, samples)
//	n, err := src.Read(buf, 0, len(buf))
//
//	// Independent cursor over the same samples
//	other, err := src.Clone()
package audio
