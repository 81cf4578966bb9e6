// Package config resolves runtime settings from defaults, an optional orrery.toml, ORRERY_ environment variables and flags
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys double as flag names and, upper-cased with the ORRERY_ prefix, environment variables
const (
	KeyFPS         = "fps"
	KeyColor       = "color"
	KeySeed        = "seed"
	KeyDebug       = "debug"
	KeyAudio       = "audio"
	KeyListen      = "listen"
	KeyBroadcastHz = "broadcast-hz"

	envPrefix  = "ORRERY"
	configName = "orrery"
)

// Config is the resolved runtime configuration
type Config struct {
	FPS         int     // Frame rate of the tick loop
	ColorMode   string  // auto, truecolor or 256
	Seed        int64   // Scene seed, 0 picks one from the clock
	Debug       bool    // Write logs/orrery.log
	Audio       bool    // Play event cues
	Listen      string  // HTTP control address, empty disables the server
	BroadcastHz float64 // Snapshot push rate per websocket client
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		FPS:         60,
		ColorMode:   "auto",
		Seed:        0,
		Debug:       false,
		Audio:       true,
		Listen:      "",
		BroadcastHz: 10,
	}
}

// RegisterFlags declares every setting on fs with its default
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(KeyFPS, d.FPS, "frames per second (1-240)")
	fs.String(KeyColor, d.ColorMode, "color mode: auto, truecolor, 256")
	fs.Int64(KeySeed, d.Seed, "scene random seed, 0 for time based")
	fs.Bool(KeyDebug, d.Debug, "write debug log to logs/orrery.log")
	fs.Bool(KeyAudio, d.Audio, "play event alert tones")
	fs.String(KeyListen, d.Listen, "HTTP control address, e.g. 127.0.0.1:8650 (empty disables)")
	fs.Float64(KeyBroadcastHz, d.BroadcastHz, "websocket snapshot rate per client")
}

// Load merges defaults, the config file, environment and any flags changed on fs
// An explicit file must exist; without one, orrery.toml is searched in the working and user config directories
func Load(file string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyFPS, d.FPS)
	v.SetDefault(KeyColor, d.ColorMode)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyAudio, d.Audio)
	v.SetDefault(KeyListen, d.Listen)
	v.SetDefault(KeyBroadcastHz, d.BroadcastHz)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, errors.Wrap(err, "bind flags")
		}
	}

	cfg := Config{
		FPS:         v.GetInt(KeyFPS),
		ColorMode:   strings.ToLower(v.GetString(KeyColor)),
		Seed:        v.GetInt64(KeySeed),
		Debug:       v.GetBool(KeyDebug),
		Audio:       v.GetBool(KeyAudio),
		Listen:      v.GetString(KeyListen),
		BroadcastHz: v.GetFloat64(KeyBroadcastHz),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the loop cannot run with
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return errors.Errorf("fps %d out of range 1-240", c.FPS)
	}
	if c.BroadcastHz <= 0 {
		return errors.Errorf("broadcast-hz must be positive, got %g", c.BroadcastHz)
	}
	switch c.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return errors.Errorf("unknown color mode %q", c.ColorMode)
	}
	return nil
}
