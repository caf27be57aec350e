package logger

import (
	"io"
	"log/slog"
	"os"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation parameters for the diagnostic log file.
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Options describes the diagnostic logger. This log carries operational
// output only; the per-day session logs are a separate artifact with their
// own fixed format.
type Options struct {
	Level      slog.Level
	File       string // when set, log to this file with rotation instead of stderr
	MaxSizeMB  int    // megabytes before rotation (default 10)
	MaxBackups int    // number of backups to keep (default 3)
	MaxAgeDays int    // days to keep (default 7)
	Compress   bool   // gzip rotated files
}

// New builds a slog.Logger per opts. Console output is colored by level;
// file output is plain text rotated by lumberjack.
func New(opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.File != "" {
		var w io.Writer = &lj.Logger{
			Filename:   opts.File,
			MaxSize:    valOr(opts.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valOr(opts.MaxBackups, DefaultMaxBackups),
			MaxAge:     valOr(opts.MaxAgeDays, DefaultMaxAgeDays),
			Compress:   opts.Compress,
		}
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(NewColorTextHandler(os.Stderr, hopts))
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
