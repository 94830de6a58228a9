// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the pull-based Backend contract and its device implementations
// Package output provides audio playback backends.
//
// A Backend opens one Output per playing channel. The Output calls the
// channel's PullFunc from the device thread whenever it needs audio, then
// converts the result to the device layout: sample rate (and pitch),
// channel count, volume and pan.
//
// Backends: oto (default), malgo (16/24/32-bit), portaudio (build tag),
// wav (render to file), null (discard) and Manual (test clock).
//
// Example:
//
//	backend, err := output.New("oto", output.Config{SampleRate: 48000})
//	out, err := backend.Create(ctx, 2, 44100, pull)
//	err = out.Start()
package output
