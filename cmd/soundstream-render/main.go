// ABOUTME: Entry point for the offline renderer
// ABOUTME: Streams one file (or a test tone) through the engine into a WAV file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/soundstream/internal/config"
	"github.com/Resonate-Protocol/soundstream/internal/logging"
	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/decode"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
	"github.com/Resonate-Protocol/soundstream/pkg/stream"
)

var (
	outPath    = flag.String("o", "render.wav", "Output WAV path")
	sampleRate = flag.Int("rate", 44100, "Output sample rate")
	channels   = flag.Int("channels", 2, "Output channel count")
	bitDepth   = flag.Int("bits", 16, "Output bit depth: 16, 24, 32")
	speed      = flag.Float64("speed", config.FastSpeed, "Render clock multiplier (1 is realtime)")
	repeat     = flag.Int("repeat", 1, "Times to play the input")
	start      = flag.Duration("start", 0, "Offset of the first traversal")
	volume     = flag.Float64("volume", 1.0, "Linear gain")
	pitch      = flag.Float64("pitch", 1.0, "Playback rate factor")
	pan        = flag.Float64("pan", 0, "Balance, -1 left to 1 right")
	tone       = flag.Float64("tone", 440, "Test tone frequency when no input file is given")
	toneLength = flag.Duration("tone-length", 2*time.Second, "Test tone length")
	logLevel   = flag.String("log-level", "info", "Log level: none, error, warn, info, debug")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, closer, err := logging.Configure(*logLevel, "", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = closer.Close() }()

	if err := run(); err != nil {
		logger.Error("Render failed", "err", err)
		_ = closer.Close()
		os.Exit(1)
	}
}

func run() error {
	var (
		src  audio.Source
		name string
		err  error
	)
	if flag.NArg() > 0 {
		name = filepath.Base(flag.Arg(0))
		src, err = decode.OpenFile(flag.Arg(0))
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
	} else {
		name = fmt.Sprintf("tone-%.0fHz", *tone)
		src = audio.NewToneSource(*tone, 0.5, *sampleRate, *channels, *toneLength)
	}

	backend, err := output.NewWAV(output.Config{
		SampleRate: *sampleRate,
		Channels:   *channels,
		BitDepth:   *bitDepth,
		Path:       *outPath,
		Speed:      *speed,
	})
	if err != nil {
		_ = src.Close()
		return err
	}

	engine, err := stream.NewEngine(stream.Config{Backend: backend, MaxChannels: 1})
	if err != nil {
		_ = src.Close()
		return err
	}
	defer func() { _ = engine.Close() }()

	sound := engine.NewSound(name, src)
	defer func() { _ = sound.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	began := time.Now()
	h, err := sound.Play(ctx, stream.PlayParams{
		Times:     *repeat,
		StartTime: *start,
		Volume:    *volume,
		Pitch:     *pitch,
		Panning:   *pan,
	})
	if err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	if err := h.Wait(ctx); err != nil {
		return err
	}
	if err := engine.Close(); err != nil {
		return err
	}

	for _, path := range backend.Paths() {
		fmt.Printf("Rendered %s (%s source, %v elapsed)\n", path, sound.Length().Round(time.Millisecond),
			time.Since(began).Round(time.Millisecond))
	}
	return nil
}
