package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	guardTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "guard",
			Name:      "ticks_total",
			Help:      "Number of polling ticks evaluated.",
		},
	)
	sessionStarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "session",
			Name:      "starts_total",
			Help:      "Number of sessions started, per watched name.",
		}, []string{"name"},
	)
	sessionEnds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "session",
			Name:      "ends_total",
			Help:      "Number of sessions ended, per watched name.",
		}, []string{"name"},
	)
	sessionSeconds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "session",
			Name:      "seconds_total",
			Help:      "Recorded session seconds, per watched name.",
		}, []string{"name"},
	)
	warnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "enforce",
			Name:      "warnings_total",
			Help:      "Number of out-of-hours warnings shown.",
		},
	)
	reminders = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "enforce",
			Name:      "reminders_total",
			Help:      "Number of daily-limit reminders shown.",
		},
	)
	shutdowns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gameguard",
			Subsystem: "enforce",
			Name:      "shutdowns_total",
			Help:      "Number of forced shutdowns triggered.",
		},
	)
	dailyPlaySeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gameguard",
			Subsystem: "guard",
			Name:      "daily_play_seconds",
			Help:      "Accumulated play seconds for the current day (poll resolution).",
		},
	)
	sessionActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gameguard",
			Subsystem: "guard",
			Name:      "session_active",
			Help:      "1 while a watched process session is active.",
		},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{
		guardTicks, sessionStarts, sessionEnds, sessionSeconds,
		warnings, reminders, shutdowns, dailyPlaySeconds, sessionActive,
	}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the
// DefaultGatherer. The caller decides whether to expose it at all; the guard
// itself never opens a listener unless configured to.
func Handler() http.Handler { return promhttp.Handler() }

// Below are lightweight helpers used by the guard to record metrics.
// They no-op if Register hasn't been called.

func IncTick() {
	if regOK.Load() {
		guardTicks.Inc()
	}
}

func IncSessionStart(name string) {
	if regOK.Load() {
		sessionStarts.WithLabelValues(name).Inc()
	}
}

func IncSessionEnd(name string, seconds float64) {
	if regOK.Load() {
		sessionEnds.WithLabelValues(name).Inc()
		sessionSeconds.WithLabelValues(name).Add(seconds)
	}
}

func IncWarning() {
	if regOK.Load() {
		warnings.Inc()
	}
}

func IncReminder() {
	if regOK.Load() {
		reminders.Inc()
	}
}

func IncShutdown() {
	if regOK.Load() {
		shutdowns.Inc()
	}
}

func SetDailyPlaySeconds(v float64) {
	if regOK.Load() {
		dailyPlaySeconds.Set(v)
	}
}

func SetSessionActive(active bool) {
	if regOK.Load() {
		if active {
			sessionActive.Set(1)
		} else {
			sessionActive.Set(0)
		}
	}
}
