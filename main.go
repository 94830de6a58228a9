// ABOUTME: Entry point for the soundstream player
// ABOUTME: Parses CLI flags, loads configuration and plays the given files
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/soundstream/internal/app"
	"github.com/Resonate-Protocol/soundstream/internal/config"
	"github.com/Resonate-Protocol/soundstream/internal/logging"
	"github.com/Resonate-Protocol/soundstream/internal/version"
	"github.com/spf13/viper"
)

var (
	configFile  = flag.String("config", "soundstream.yaml", "Config file path (optional)")
	outputName  = flag.String("output", "oto", "Output backend: oto, malgo, portaudio, wav, null")
	logLevel    = flag.String("log-level", "info", "Log level: none, error, warn, info, debug")
	logFile     = flag.String("log-file", "", "Log file path (default: soundstream.log in TUI mode)")
	sampleRate  = flag.Int("sample-rate", 44100, "Device sample rate")
	channels    = flag.Int("channels", 2, "Device channel count")
	bitDepth    = flag.Int("bit-depth", 16, "Device bit depth: 16, 24, 32")
	maxChannels = flag.Int("max-channels", 32, "Maximum concurrent playbacks")
	buffer      = flag.Duration("buffer", 0, "Audio buffered before output starts (default: 100ms)")
	repeat      = flag.Int("repeat", 1, "Times to play each file, -1 loops forever")
	volume      = flag.Float64("volume", 1.0, "Initial volume (1.0 is unity gain)")
	wavPath     = flag.String("wav", "soundstream.wav", "Output path for the wav backend")
	realtime    = flag.Bool("realtime", true, "Clock file backends in realtime")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// flagKeys maps flag names onto config keys
var flagKeys = map[string]string{
	"output":       "output",
	"log-level":    "loglevel",
	"log-file":     "logfile",
	"sample-rate":  "samplerate",
	"channels":     "channels",
	"bit-depth":    "bitdepth",
	"max-channels": "maxchannels",
	"buffer":       "buffer",
	"repeat":       "repeat",
	"volume":       "volume",
	"wav":          "wavpath",
	"realtime":     "realtime",
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	useTUI := !*noTUI

	v := config.New()
	applyFlags(v)

	settings, err := config.Load(v, *configFile)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if useTUI && settings.LogFile == "" {
		// The TUI owns the terminal
		settings.LogFile = "soundstream.log"
	}

	logger, closer, err := logging.Configure(settings.LogLevel, settings.LogFile, !useTUI)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer func() { _ = closer.Close() }()

	logger.Info("Starting soundstream", "version", version.String(), "output", settings.Output,
		"files", flag.NArg())

	player, err := app.New(app.Config{
		Files:    flag.Args(),
		Settings: settings,
		UseTUI:   useTUI,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("Failed to create player", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := player.Run(ctx); err != nil {
		logger.Error("Playback failed", "err", err)
		os.Exit(1)
	}

	stats := player.Stats()
	logger.Info("Player stopped", "finished", stats.Finished, "cancelled", stats.Cancelled,
		"failed", stats.Failed)
}

// applyFlags overrides config values with flags set on the command line
func applyFlags(v *viper.Viper) {
	values := map[string]any{
		"output":       *outputName,
		"log-level":    *logLevel,
		"log-file":     *logFile,
		"sample-rate":  *sampleRate,
		"channels":     *channels,
		"bit-depth":    *bitDepth,
		"max-channels": *maxChannels,
		"buffer":       *buffer,
		"repeat":       *repeat,
		"volume":       *volume,
		"wav":          *wavPath,
		"realtime":     *realtime,
	}

	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, values[f.Name])
		}
	})
}
