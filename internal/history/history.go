// Package history exports session lifecycle events to an optional external
// sink. The sink is strictly supplementary: the weekly report is always
// rebuilt from the day logs, never from here.
package history

import (
	"context"
	"time"
)

// EventType defines the kind of session event.
type EventType string

const (
	EventStart EventType = "start"
	EventStop  EventType = "stop"
)

// Event represents a session lifecycle event.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Name       string    `json:"name"`
	Seconds    int       `json:"seconds"` // zero for start events
}

// Sink is a destination for session events. Implementations must be safe
// for concurrent use.
type Sink interface {
	Send(ctx context.Context, e Event) error
	Close() error
}
