// ABOUTME: Audio encoder package for packing PCM into byte formats and files
// ABOUTME: Raw PCM packing for device buffers and a WAV file writer
// Package encode provides audio encoders used by the output backends.
//
// Supports: raw PCM (16, 24 and 32-bit little-endian) for device buffers,
// and WAV files through go-audio/wav for offline rendering.
//
// All encoders accept int32 samples in 24-bit range.
//
// Example:
//
//	enc, err := encode.NewPCM(audio.Format{Codec: "pcm", BitDepth: 16})
//	n := enc.EncodeInto(deviceBuffer, samples)
//
//	w, err := encode.CreateWAV("out.wav", audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16})
//	err = w.Write(samples)
//	err = w.Close()
package encode
