// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio between sample rates and shifts pitch
// Package resample provides streaming sample rate conversion.
//
// Uses linear interpolation and keeps the previous chunk's last frame, so
// audio fed in arbitrary chunk sizes resamples without seams. Overriding the
// ratio with SetRatio changes playback speed and pitch together.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	out := make([]int32, r.OutputSamplesNeeded(len(in)))
//	n := r.Resample(in, out)
package resample
