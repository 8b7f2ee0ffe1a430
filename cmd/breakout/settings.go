package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/logging"
)

// settings are the global options after flags, BREAKOUT_* environment
// variables and the optional settings file have been merged.
type settings struct {
	FPS        int
	Seed       int64
	DBPath     string
	ConfigPath string
	Difficulty config.DifficultyPreset
	Layout     config.Layout
	LogFile    string
	LogLevel   string
}

// newSettingsViper binds flags and the environment. Flags set on the command
// line win over BREAKOUT_FPS and friends, which win over the settings file.
func newSettingsViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("BREAKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
	}
	return v, nil
}

// readSettingsFile loads settings.{yaml,toml,properties,...} from
// ~/.breakout or the working directory. A missing file is not an error.
func readSettingsFile(v *viper.Viper) error {
	v.SetConfigName("settings")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".breakout"))
	}
	v.AddConfigPath(".")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

func loadSettings(v *viper.Viper) (settings, error) {
	var s settings
	var err error

	if s.FPS, err = cast.ToIntE(v.Get("fps")); err != nil {
		return s, fmt.Errorf("settings: fps: %w", err)
	}
	if s.FPS <= 0 {
		return s, fmt.Errorf("settings: fps must be positive, got %d", s.FPS)
	}
	if s.Seed, err = cast.ToInt64E(v.Get("seed")); err != nil {
		return s, fmt.Errorf("settings: seed: %w", err)
	}
	if s.Difficulty, err = config.ParseDifficulty(cast.ToString(v.Get("difficulty"))); err != nil {
		return s, fmt.Errorf("settings: %w", err)
	}
	if s.Layout, err = config.ParseLayout(cast.ToString(v.Get("layout"))); err != nil {
		return s, fmt.Errorf("settings: %w", err)
	}

	s.DBPath = cast.ToString(v.Get("db"))
	s.ConfigPath = cast.ToString(v.Get("config"))
	s.LogFile = cast.ToString(v.Get("log-file"))
	s.LogLevel = cast.ToString(v.Get("log-level"))
	return s, nil
}

// logOptions returns the logger options for a host.
func (s settings) logOptions(prefix string) logging.Options {
	opts := logging.DefaultOptions()
	opts.Prefix = prefix
	opts.File = s.LogFile
	if s.LogLevel != "" {
		opts.Level = s.LogLevel
	}
	return opts
}
