package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlayLogger_WritesAndClosesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.log")
	t.Setenv("WORDMATH_LOG_FILE", path)

	logger, closeLog := playLogger("info")
	logger.Info("problem generation failed", "error", "oracle down")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := closeLog(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("second close = %v, want os.ErrClosed", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "oracle down") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestPlayLogger_NoFile(t *testing.T) {
	t.Setenv("WORDMATH_LOG_FILE", "")

	logger, closeLog := playLogger("debug")
	logger.Error("dropped")
	if err := closeLog(); err != nil {
		t.Errorf("close = %v, want nil", err)
	}
}
