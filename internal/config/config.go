// ABOUTME: Configuration loading for the soundstream binaries
// ABOUTME: Viper defaults, optional config file and flag overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/Resonate-Protocol/soundstream/pkg/audio/output"
	"github.com/Resonate-Protocol/soundstream/pkg/stream"
	"github.com/spf13/viper"
)

// FastSpeed is the clock multiplier file backends use when realtime is off
const FastSpeed = 32

// Config holds the resolved player settings
type Config struct {
	LogLevel    string
	LogFile     string
	Output      string
	SampleRate  int
	Channels    int
	BitDepth    int
	MaxChannels int
	Buffer      time.Duration
	Repeat      int
	Volume      float64
	WAVPath     string
	Realtime    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("output", "oto")
	v.SetDefault("samplerate", 44100)
	v.SetDefault("channels", 2)
	v.SetDefault("bitdepth", 16)
	v.SetDefault("maxchannels", stream.DefaultMaxChannels)
	v.SetDefault("buffer", stream.DefaultBufferTime)
	v.SetDefault("repeat", 1)
	v.SetDefault("volume", 1.0)
	v.SetDefault("wavpath", "soundstream.wav")
	v.SetDefault("realtime", true)
}

// New returns a viper instance with defaults applied
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SOUNDSTREAM")
	v.AutomaticEnv()
	return v
}

// Load reads configFile into v when it exists. A missing file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
			slog.Info("no config file found", "path", configFile)
		}
	}

	return Resolve(v)
}

// Resolve converts the current viper values into a validated Config
func Resolve(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:    v.GetString("loglevel"),
		LogFile:     v.GetString("logfile"),
		Output:      v.GetString("output"),
		SampleRate:  v.GetInt("samplerate"),
		Channels:    v.GetInt("channels"),
		BitDepth:    v.GetInt("bitdepth"),
		MaxChannels: v.GetInt("maxchannels"),
		Buffer:      v.GetDuration("buffer"),
		Repeat:      v.GetInt("repeat"),
		Volume:      v.GetFloat64("volume"),
		WAVPath:     v.GetString("wavpath"),
		Realtime:    v.GetBool("realtime"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	known := false
	for _, name := range output.Names {
		if c.Output == name {
			known = true
			break
		}
	}
	switch {
	case !known:
		return fmt.Errorf("%w: %q", output.ErrUnknownBackend, c.Output)
	case c.SampleRate <= 0:
		return fmt.Errorf("invalid sample rate %d", c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("invalid channel count %d", c.Channels)
	case c.BitDepth != 16 && c.BitDepth != 24 && c.BitDepth != 32:
		return fmt.Errorf("unsupported bit depth %d", c.BitDepth)
	case c.MaxChannels <= 0:
		return fmt.Errorf("invalid max channels %d", c.MaxChannels)
	case c.Buffer <= 0:
		return fmt.Errorf("invalid buffer time %v", c.Buffer)
	case c.Repeat == 0 || c.Repeat < stream.Infinite:
		return fmt.Errorf("invalid repeat count %d", c.Repeat)
	case c.Volume < 0:
		return fmt.Errorf("invalid volume %v", c.Volume)
	}
	return nil
}

// OutputConfig maps the settings onto a backend config
func (c Config) OutputConfig(logger *slog.Logger) output.Config {
	speed := 1.0
	if !c.Realtime {
		speed = FastSpeed
	}
	return output.Config{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BitDepth:   c.BitDepth,
		Path:       c.WAVPath,
		Speed:      speed,
		Logger:     logger,
	}
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
