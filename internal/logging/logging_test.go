package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "breakout.log")

	opts := DefaultOptions()
	opts.File = path
	opts.Level = "debug"

	logger, closer, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("round ended", "outcome", "won")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "round ended") || !strings.Contains(out, `"outcome":"won"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestNewLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.log")

	opts := DefaultOptions()
	opts.File = path
	opts.Level = "warn"

	logger, closer, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	closer.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("level filter not applied: %s", data)
	}
}

func TestNewBadLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "chatty"
	if _, _, err := New(opts); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestNewStderr(t *testing.T) {
	logger, closer, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if logger == nil || closer.Close() != nil {
		t.Error("stderr logger should be usable and close cleanly")
	}
	Discard().Info("dropped")
}
