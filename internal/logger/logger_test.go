package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameguard.log")
	log := New(Options{Level: slog.LevelDebug, File: path})
	log.Info("hello", "k", "v")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "hello") || !strings.Contains(string(b), "k=v") {
		t.Fatalf("unexpected log content: %q", string(b))
	}
}

func TestColorTextHandlerColorsByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorTextHandler(&buf, nil))
	log.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "\033[33m") {
		t.Fatalf("warn output not colored yellow: %q", out)
	}
	if !strings.Contains(out, "careful") {
		t.Fatalf("message lost: %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameguard.log")
	log := New(Options{Level: slog.LevelWarn, File: path})
	log.Debug("invisible")
	log.Warn("visible")

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "invisible") {
		t.Fatalf("debug line written at warn level")
	}
	if !strings.Contains(string(b), "visible") {
		t.Fatalf("warn line missing")
	}
}
