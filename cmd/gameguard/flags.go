package main

import "time"

// GlobalFlags holds persistent flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
	LogDir     string
	Games      []string
}

// RunFlags holds flags for the root (monitor) command.
type RunFlags struct {
	Interval      time.Duration
	GraceMinutes  int
	HistoryDSN    string
	MetricsListen string
	LogFile       string
	Debug         bool
}
