// Package guard implements the session state machine: one polling loop that
// tracks whether a watched process is running, accumulates daily playtime,
// and decides when to warn or force a shutdown.
package guard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shovere/game-guard/internal/action"
	"github.com/shovere/game-guard/internal/daylog"
	"github.com/shovere/game-guard/internal/history"
	"github.com/shovere/game-guard/internal/metrics"
	"github.com/shovere/game-guard/internal/policy"
	"github.com/shovere/game-guard/internal/presence"
	"github.com/shovere/game-guard/internal/suggest"
	"github.com/shovere/game-guard/internal/weekly"
)

// suggestionCount is how many positive alternatives each popup carries.
const suggestionCount = 5

// State is the full session-machine state. It is an explicit struct passed
// by reference into Tick so tests can construct arbitrary prior states.
type State struct {
	Active              bool
	DisplayName         string
	SessionStart        time.Time
	OutsideWarningStart time.Time // zero while no warning window is open
	Today               time.Time // date the daily counters belong to
	PlaySeconds         float64   // poll-resolution accumulation, resets daily
	ReminderShown       bool
	LastTick            time.Time
}

// Config carries the guard's static parameters.
type Config struct {
	Policy   policy.Policy
	Interval time.Duration // polling interval
	Grace    time.Duration // out-of-hours grace before shutdown
}

// Guard drives the state machine once per polling tick.
type Guard struct {
	cfg      Config
	set      presence.Set
	store    *daylog.Store
	finder   presence.Finder
	notifier action.Notifier
	shutdown action.Shutdown
	clock    policy.Clock
	sink     history.Sink
	pool     *suggest.Pool
	log      *slog.Logger
}

// New assembles a guard. Optional collaborators (history sink, suggestion
// pool, clock) have setters.
func New(cfg Config, set presence.Set, store *daylog.Store, finder presence.Finder,
	notifier action.Notifier, shutdown action.Shutdown, log *slog.Logger) *Guard {
	return &Guard{
		cfg:      cfg,
		set:      set,
		store:    store,
		finder:   finder,
		notifier: notifier,
		shutdown: shutdown,
		clock:    policy.RealClock{},
		pool:     suggest.DefaultPool(),
		log:      log,
	}
}

// SetClock replaces the wall clock, for tests.
func (g *Guard) SetClock(c policy.Clock) { g.clock = c }

// SetHistorySink attaches an optional session-event sink. Sink failures are
// logged and dropped; accounting never depends on the sink.
func (g *Guard) SetHistorySink(s history.Sink) { g.sink = s }

// SetSuggestions replaces the suggestion pool.
func (g *Guard) SetSuggestions(p *suggest.Pool) { g.pool = p }

// Run polls process presence on the configured interval and feeds it into
// Tick until the context is cancelled or a shutdown is triggered. On
// cancellation a final record is written synchronously before returning.
func (g *Guard) Run(ctx context.Context) error {
	now := g.clock.Now()
	st := State{Today: dateOf(now), LastTick: now}

	g.log.Info("watching", "games", strings.Join(g.set.Names(), ", "),
		"interval", g.cfg.Interval, "grace", g.cfg.Grace)

	ticker := time.NewTicker(g.cfg.Interval)
	defer ticker.Stop()

	for {
		now := g.clock.Now()
		name, found := g.probe(ctx)
		stop, err := g.Tick(ctx, &st, now, found, name)
		if err != nil {
			return err
		}
		if stop {
			g.log.Info("shutdown triggered, guard exiting")
			return nil
		}
		select {
		case <-ctx.Done():
			if err := g.store.Append(g.clock.Now(), daylog.ManualTermination); err != nil {
				g.log.Error("final log write failed", "error", err)
			}
			g.log.Info("guard stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// probe runs the presence query. A failed query counts as "not found": the
// next tick retries, and a transiently unreadable process table must not end
// an active session permanently or crash the loop.
func (g *Guard) probe(ctx context.Context) (string, bool) {
	name, ok, err := g.finder.Find(ctx)
	if err != nil {
		g.log.Warn("presence query failed", "error", err)
		return "", false
	}
	return name, ok
}

// Tick evaluates one polling observation against the state. Transitions run
// in a fixed order: day rollover, accumulation, session start, running
// enforcement, session stop. stop is true once a shutdown was triggered and
// the loop must not continue. Errors are append failures and are fatal.
func (g *Guard) Tick(ctx context.Context, st *State, now time.Time, found bool, name string) (stop bool, err error) {
	metrics.IncTick()

	// Day rollover: reset the daily counters exactly once per date change.
	if !sameDay(now, st.Today) {
		st.Today = dateOf(now)
		st.PlaySeconds = 0
		st.ReminderShown = false
		if err := g.store.Append(now, daylog.NewDayMarker); err != nil {
			return false, err
		}
		g.log.Info("new day", "date", st.Today.Format("2006-01-02"))
	}

	// Accumulate at poll resolution: the whole delta since the previous tick
	// is attributed to the session if one was active.
	if st.Active {
		st.PlaySeconds += now.Sub(st.LastTick).Seconds()
	}
	metrics.SetDailyPlaySeconds(st.PlaySeconds)

	allowed := g.cfg.Policy.IsAllowedNow(now)

	if found && !st.Active {
		if err := g.startSession(ctx, st, now, name, allowed); err != nil {
			return false, err
		}
	}

	if found {
		label := st.DisplayName
		if label == "" {
			label = name
		}
		if !allowed {
			stop, err := g.enforceOutsideHours(st, now, label)
			if stop || err != nil {
				return stop, err
			}
		} else if !st.ReminderShown && st.PlaySeconds >= g.cfg.Policy.DailyLimit(now).Seconds() {
			if err := g.remindDailyLimit(st, now, label); err != nil {
				return false, err
			}
		}
	}

	if !found && st.Active {
		if err := g.stopSession(ctx, st, now); err != nil {
			return false, err
		}
	}

	st.LastTick = now
	return false, nil
}

func (g *Guard) startSession(ctx context.Context, st *State, now time.Time, name string, allowed bool) error {
	st.Active = true
	st.DisplayName = name
	st.SessionStart = now
	st.OutsideWarningStart = time.Time{}

	if err := g.store.Append(now, daylog.Started(name)); err != nil {
		return err
	}
	metrics.IncSessionStart(name)
	metrics.SetSessionActive(true)
	g.sendHistory(ctx, history.Event{Type: history.EventStart, OccurredAt: now, Name: name})
	g.log.Info("session started", "name", name, "allowed", allowed)

	weekSecs := weekly.Seconds(g.store, g.set, now)
	weeklyLine := fmt.Sprintf("So far this week you've played these games for about %s.",
		daylog.FormatDuration(weekSecs))

	if allowed {
		body := fmt.Sprintf(
			"You've started %s during allowed hours.\n\nDaily limit: %g hours.\n%s\n\n%s",
			name, g.cfg.Policy.LimitHours(now), weeklyLine, g.pool.Pick(suggestionCount))
		g.notify("Game Allowed", body)
		return nil
	}

	st.OutsideWarningStart = now
	body := fmt.Sprintf(
		"You started %s outside allowed hours.\n\nAllowed: %s\nShutdown in %d minutes if not closed.\n\n%s\n\n%s",
		name, g.cfg.Policy.WindowDescription(now), g.graceMinutes(), weeklyLine,
		g.pool.Pick(suggestionCount))
	g.notify("Outside Allowed Hours", body)
	if err := g.store.Append(now, daylog.Warning(name)); err != nil {
		return err
	}
	metrics.IncWarning()
	return nil
}

// enforceOutsideHours opens a warning window on the first disallowed tick
// and forces shutdown once the grace period is strictly exceeded. It applies
// equally to sessions that started disallowed and to sessions that crossed
// the window boundary mid-run.
func (g *Guard) enforceOutsideHours(st *State, now time.Time, label string) (bool, error) {
	if st.OutsideWarningStart.IsZero() {
		st.OutsideWarningStart = now
		body := fmt.Sprintf(
			"%s is running outside allowed hours.\n\nAllowed: %s\nShutdown in %d minutes.\n\n%s",
			label, g.cfg.Policy.WindowDescription(now), g.graceMinutes(),
			g.pool.Pick(suggestionCount))
		g.notify("Outside Allowed Hours", body)
		if err := g.store.Append(now, daylog.WarningRepeated(label)); err != nil {
			return false, err
		}
		metrics.IncWarning()
	}

	// Strictly greater-than: at exact equality shutdown is not yet due.
	if now.Sub(st.OutsideWarningStart) > g.cfg.Grace {
		if err := g.store.Append(now, daylog.ShutdownTriggered(label)); err != nil {
			return false, err
		}
		metrics.IncShutdown()
		g.log.Warn("forcing shutdown", "name", label, "grace", g.cfg.Grace)
		if err := g.shutdown.Now(); err != nil {
			g.log.Error("shutdown action failed", "error", err)
		}
		return true, nil
	}
	return false, nil
}

func (g *Guard) remindDailyLimit(st *State, now time.Time, label string) error {
	played := int(st.PlaySeconds)
	body := fmt.Sprintf("You've played %s for %s today.\n\nDaily limit reached.\n\n%s",
		label, daylog.FormatDuration(played), g.pool.Pick(suggestionCount))
	g.notify("Daily Limit Reached", body)
	st.ReminderShown = true
	if err := g.store.Append(now, daylog.Reminder(label, played)); err != nil {
		return err
	}
	metrics.IncReminder()
	g.log.Info("daily limit reached", "name", label, "played_seconds", played)
	return nil
}

func (g *Guard) stopSession(ctx context.Context, st *State, now time.Time) error {
	// Exact start/stop delta, not the poll accumulation: the logs are the
	// accounting source for the weekly report and carry the precise figure.
	duration := now.Sub(st.SessionStart)
	secs := int(duration.Seconds())
	if err := g.store.Append(now, daylog.Ended(st.DisplayName, secs)); err != nil {
		return err
	}
	metrics.IncSessionEnd(st.DisplayName, duration.Seconds())
	metrics.SetSessionActive(false)
	g.sendHistory(ctx, history.Event{
		Type: history.EventStop, OccurredAt: now, Name: st.DisplayName, Seconds: secs,
	})
	g.log.Info("session ended", "name", st.DisplayName, "duration_seconds", secs)

	st.Active = false
	st.DisplayName = ""
	st.SessionStart = time.Time{}
	st.OutsideWarningStart = time.Time{}
	return nil
}

// notify shows a popup. A notification failure never stops enforcement.
func (g *Guard) notify(title, body string) {
	if err := g.notifier.Notify(title, body); err != nil {
		g.log.Warn("notification failed", "title", title, "error", err)
	}
}

func (g *Guard) sendHistory(ctx context.Context, e history.Event) {
	if g.sink == nil {
		return
	}
	if err := g.sink.Send(ctx, e); err != nil {
		g.log.Warn("history sink send failed", "error", err)
	}
}

func (g *Guard) graceMinutes() int {
	return int(g.cfg.Grace / time.Minute)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
