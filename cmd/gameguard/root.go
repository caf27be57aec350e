package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	gameguard "github.com/shovere/game-guard"
	"github.com/shovere/game-guard/internal/config"
	"github.com/shovere/game-guard/internal/daylog"
	"github.com/shovere/game-guard/internal/logger"
	"github.com/shovere/game-guard/internal/metrics"
	"github.com/shovere/game-guard/internal/presence"
	"github.com/shovere/game-guard/internal/weekly"
)

var version = "dev"

func buildRoot() *cobra.Command {
	gf := &GlobalFlags{}
	rf := &RunFlags{}

	root := &cobra.Command{
		Use:           "gameguard",
		Short:         "Personal game-limiting monitor",
		Long:          "gameguard watches a set of process names, enforces allowed hours and a daily playtime budget, and keeps per-day session logs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuard(cmd, gf, rf)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.ConfigPath, "config", "", "path to TOML config file")
	pf.StringVar(&gf.LogDir, "log-dir", "", "directory for per-day session logs")
	pf.StringSliceVarP(&gf.Games, "games", "g", nil, "process names to watch (e.g. eldenring.exe,factorio)")

	f := root.Flags()
	f.DurationVar(&rf.Interval, "interval", 0, "polling interval (default 5s)")
	f.IntVar(&rf.GraceMinutes, "grace", 0, "out-of-hours grace period in minutes (default 15)")
	f.StringVar(&rf.HistoryDSN, "history-dsn", "", "optional SQLite DSN for session history")
	f.StringVar(&rf.MetricsListen, "metrics-listen", "", "optional listen address for /metrics (off by default)")
	f.StringVar(&rf.LogFile, "log-file", "", "diagnostic log file (rotated); stderr when unset")
	f.BoolVar(&rf.Debug, "debug", false, "enable debug logging")

	root.AddCommand(buildReport(gf), buildCheck(gf), buildVersion())
	return root
}

func runGuard(cmd *cobra.Command, gf *GlobalFlags, rf *RunFlags) error {
	fc, err := loadMerged(cmd, gf, rf)
	if err != nil {
		return err
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if fc.Log.Debug {
		level = slog.LevelDebug
	}
	log := logger.New(logger.Options{
		Level:      level,
		File:       fc.Log.File,
		MaxSizeMB:  fc.Log.MaxSizeMB,
		MaxBackups: fc.Log.MaxBackups,
		MaxAgeDays: fc.Log.MaxAgeDays,
		Compress:   fc.Log.Compress,
	})

	g, err := gameguard.New(gameguard.Options{
		Games:        fc.Guard.Games,
		LogDir:       fc.Guard.LogDir,
		Policy:       fc.Policy(),
		Interval:     fc.Guard.PollInterval,
		Grace:        time.Duration(fc.Guard.GraceMinutes) * time.Minute,
		Alternatives: fc.Suggestions.Alternatives,
		AltGames:     fc.Suggestions.Games,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	if fc.History.DSN != "" {
		sink, err := gameguard.OpenHistorySink(fc.History.DSN)
		if err != nil {
			return fmt.Errorf("open history sink: %w", err)
		}
		defer func() { _ = sink.Close() }()
		g.SetHistorySink(sink)
	}

	if fc.Metrics.Listen != "" {
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		go serveMetrics(fc.Metrics.Listen, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Run(ctx)
}

func serveMetrics(addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("metrics listener started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("metrics listener failed", "error", err)
	}
}

// loadMerged loads the config file and applies flag overrides. Flags win
// over the file; the file wins over built-in defaults.
func loadMerged(cmd *cobra.Command, gf *GlobalFlags, rf *RunFlags) (config.FileConfig, error) {
	fc, err := config.Load(gf.ConfigPath)
	if err != nil {
		return fc, err
	}
	if len(gf.Games) > 0 {
		fc.Guard.Games = gf.Games
	}
	if gf.LogDir != "" {
		fc.Guard.LogDir = gf.LogDir
	}
	if rf.Interval > 0 {
		fc.Guard.PollInterval = rf.Interval
	}
	if rf.GraceMinutes > 0 {
		fc.Guard.GraceMinutes = rf.GraceMinutes
	}
	if rf.HistoryDSN != "" {
		fc.History.DSN = rf.HistoryDSN
	}
	if rf.MetricsListen != "" {
		fc.Metrics.Listen = rf.MetricsListen
	}
	if rf.LogFile != "" {
		fc.Log.File = rf.LogFile
	}
	if cmd.Flags().Changed("debug") {
		fc.Log.Debug = rf.Debug
	}
	return fc, nil
}

// loadWatchConfig is the lighter merge used by report and check: only the
// watched set and the log directory matter.
func loadWatchConfig(gf *GlobalFlags) (config.FileConfig, error) {
	fc, err := config.Load(gf.ConfigPath)
	if err != nil {
		return fc, err
	}
	if len(gf.Games) > 0 {
		fc.Guard.Games = gf.Games
	}
	if gf.LogDir != "" {
		fc.Guard.LogDir = gf.LogDir
	}
	if len(fc.Guard.Games) == 0 {
		return fc, fmt.Errorf("no games to watch: set --games or [guard] games")
	}
	return fc, nil
}

func buildReport(gf *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print this week's playtime total rebuilt from the day logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := loadWatchConfig(gf)
			if err != nil {
				return err
			}
			store, err := daylog.NewStore(fc.Guard.LogDir, nil)
			if err != nil {
				return err
			}
			set := presence.NewSet(fc.Guard.Games)
			now := time.Now()
			secs := weekly.Seconds(store, set, now)
			fmt.Printf("Week of %s: %s (%d seconds) across %d watched game(s)\n",
				weekly.WeekStart(now).Format("2006-01-02"),
				daylog.FormatDuration(secs), secs, set.Len())
			return nil
		},
	}
}

func buildCheck(gf *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe once for a running watched process",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := loadWatchConfig(gf)
			if err != nil {
				return err
			}
			finder := presence.NewProcessFinder(presence.NewSet(fc.Guard.Games))
			name, ok, err := finder.Find(cmd.Context())
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("running: %s\n", name)
			} else {
				fmt.Println("no watched process running")
			}
			return nil
		},
	}
}

func buildVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gameguard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gameguard", version)
		},
	}
}
