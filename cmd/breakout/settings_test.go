package main

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func TestSettingsDefaults(t *testing.T) {
	v, err := newSettingsViper(rootCmd.PersistentFlags())
	if err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(v)
	if err != nil {
		t.Fatalf("loadSettings() failed: %v", err)
	}

	if s.FPS != 60 || s.Seed != 0 {
		t.Errorf("fps=%d seed=%d, expected 60 and 0", s.FPS, s.Seed)
	}
	if s.DBPath != storage.DefaultPath {
		t.Errorf("db = %q, expected %q", s.DBPath, storage.DefaultPath)
	}
	if s.Difficulty != config.DifficultyNormal || s.Layout != config.LayoutClassic {
		t.Errorf("difficulty=%q layout=%q", s.Difficulty, s.Layout)
	}
	if s.LogLevel != "info" || s.LogFile != "" {
		t.Errorf("log level=%q file=%q", s.LogLevel, s.LogFile)
	}
}

func TestSettingsFromEnvironment(t *testing.T) {
	t.Setenv("BREAKOUT_FPS", "30")
	t.Setenv("BREAKOUT_SEED", "1234")
	t.Setenv("BREAKOUT_LAYOUT", "mobile")
	t.Setenv("BREAKOUT_LOG_LEVEL", "debug")
	t.Setenv("BREAKOUT_LOG_FILE", "/tmp/breakout.log")

	v, err := newSettingsViper(rootCmd.PersistentFlags())
	if err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(v)
	if err != nil {
		t.Fatalf("loadSettings() failed: %v", err)
	}

	if s.FPS != 30 || s.Seed != 1234 {
		t.Errorf("fps=%d seed=%d, expected 30 and 1234", s.FPS, s.Seed)
	}
	if s.Layout != config.LayoutMobile {
		t.Errorf("layout = %q, expected mobile", s.Layout)
	}

	opts := s.logOptions("breakout-sim")
	if opts.Level != "debug" || opts.File != "/tmp/breakout.log" || opts.Prefix != "breakout-sim" {
		t.Errorf("logOptions() = %+v", opts)
	}
}

func TestSettingsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"fps not a number", "BREAKOUT_FPS", "fast"},
		{"fps zero", "BREAKOUT_FPS", "0"},
		{"seed not a number", "BREAKOUT_SEED", "abc"},
		{"unknown difficulty", "BREAKOUT_DIFFICULTY", "insane"},
		{"unknown layout", "BREAKOUT_LAYOUT", "tablet"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			v, err := newSettingsViper(rootCmd.PersistentFlags())
			if err != nil {
				t.Fatal(err)
			}
			if _, err := loadSettings(v); err == nil {
				t.Errorf("%s=%q should be rejected", tc.key, tc.value)
			}
		})
	}
}

func TestPort(t *testing.T) {
	tests := []struct{ addr, want string }{
		{":23234", "23234"},
		{"0.0.0.0:2222", "2222"},
		{"localhost", "localhost"},
	}
	for _, tc := range tests {
		if got := port(tc.addr); got != tc.want {
			t.Errorf("port(%q) = %q, expected %q", tc.addr, got, tc.want)
		}
	}
}
