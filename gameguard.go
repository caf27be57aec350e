package gameguard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shovere/game-guard/internal/action"
	"github.com/shovere/game-guard/internal/daylog"
	"github.com/shovere/game-guard/internal/guard"
	"github.com/shovere/game-guard/internal/history"
	"github.com/shovere/game-guard/internal/history/sqlite"
	"github.com/shovere/game-guard/internal/policy"
	"github.com/shovere/game-guard/internal/presence"
	"github.com/shovere/game-guard/internal/suggest"
	"github.com/shovere/game-guard/internal/weekly"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Policy = policy.Policy

type State = guard.State

type HistorySink = history.Sink

// Options configures an embedded guard.
type Options struct {
	Games        []string      // process names to watch, required
	LogDir       string        // day-log directory, required
	Policy       Policy        // zero value means policy.Default()
	Interval     time.Duration // polling interval, default 5s
	Grace        time.Duration // out-of-hours grace, default 15m
	Alternatives []string      // suggestion pool override
	AltGames     []string      // low-stress games override
	Logger       *slog.Logger  // default slog.Default()
}

// Guard is a thin facade over internal/guard.Guard wired with the real
// process finder, desktop notifier and system shutdown action.
type Guard struct {
	inner *guard.Guard
	store *daylog.Store
	set   presence.Set
}

// New assembles a guard from Options.
func New(opts Options) (*Guard, error) {
	set := presence.NewSet(opts.Games)
	if set.Len() == 0 {
		return nil, fmt.Errorf("no games to watch")
	}
	if opts.LogDir == "" {
		return nil, fmt.Errorf("log dir is required")
	}
	store, err := daylog.NewStore(opts.LogDir, nil)
	if err != nil {
		return nil, err
	}

	pol := opts.Policy
	if pol == (Policy{}) {
		pol = policy.Default()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	grace := opts.Grace
	if grace <= 0 {
		grace = 15 * time.Minute
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	g := guard.New(
		guard.Config{Policy: pol, Interval: interval, Grace: grace},
		set,
		store,
		presence.NewProcessFinder(set),
		action.NewDesktopNotifier("GameGuard"),
		action.SystemShutdown{},
		log,
	)
	if opts.Alternatives != nil || opts.AltGames != nil {
		alts := opts.Alternatives
		if alts == nil {
			alts = suggest.DefaultAlternatives
		}
		games := opts.AltGames
		if games == nil {
			games = suggest.DefaultGames
		}
		g.SetSuggestions(suggest.NewPool(alts, games))
	}
	return &Guard{inner: g, store: store, set: set}, nil
}

// SetHistorySink attaches an optional session-event sink.
func (g *Guard) SetHistorySink(s HistorySink) { g.inner.SetHistorySink(s) }

// Run blocks until ctx is cancelled or a shutdown is triggered.
func (g *Guard) Run(ctx context.Context) error { return g.inner.Run(ctx) }

// WeeklySeconds rebuilds this week's total play seconds from the day logs.
func (g *Guard) WeeklySeconds(today time.Time) int {
	return weekly.Seconds(g.store, g.set, today)
}

// OpenHistorySink opens a SQLite session-history sink for the given DSN.
func OpenHistorySink(dsn string) (HistorySink, error) { return sqlite.New(dsn) }
