// ABOUTME: Audio decoder package for multiple container formats
// ABOUTME: Provides Decoder interface and implementations for PCM, WAV, AIFF, FLAC, MP3, Vorbis, Opus
// Package decode turns encoded audio into audio.Source cursors.
//
// Supports: raw PCM (16-bit and 24-bit), WAV, AIFF, FLAC, MP3, Ogg Vorbis,
// and Ogg Opus when built with -tags opus (requires libopus and libopusfile)
//
// Every decoder outputs int32 samples in the 24-bit range. MP3 files are
// streamed from disk; the other formats are decoded into a shared clip so
// clones are cheap.
//
// Example:
//
//	src, err := decode.OpenFile("music.flac")
//	if err != nil {
//		return err
//	}
//	defer src.Close()
package decode
