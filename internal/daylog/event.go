package daylog

import (
	"fmt"
	"strconv"
	"strings"
)

// The day logs double as the accounting source: the weekly report is rebuilt
// by re-parsing them. Formatting and parsing therefore live together here so
// the two sides cannot drift apart.
//
// Line format on disk: "[HH:MM:SS] <event text>\n". The event grammars below
// produce the <event text> part only; the store adds the timestamp prefix.

const (
	endedMarker    = "ENDED:"
	durationMarker = "DurationSeconds:"
	nameSeparator  = "—" // em dash between the name and the duration field

	// NewDayMarker is appended once whenever the wall-clock date changes.
	NewDayMarker = "===== NEW DAY ====="

	// ManualTermination is the final record written on interrupt.
	ManualTermination = "Session terminated manually."
)

// Started formats a session-start record.
func Started(name string) string {
	return fmt.Sprintf("STARTED: %s", name)
}

// Ended formats a session-end record. seconds is the exact wall-clock delta
// between the start and end observations; the parenthesized form is display
// only and ignored by ParseEnded.
func Ended(name string, seconds int) string {
	return fmt.Sprintf("ENDED: %s %s DurationSeconds: %d (%s)",
		name, nameSeparator, seconds, FormatDuration(seconds))
}

// Warning formats the record for a session started outside allowed hours.
func Warning(name string) string {
	return fmt.Sprintf("WARNING: %s started outside allowed hours.", name)
}

// WarningRepeated formats the record for an already-running session observed
// outside allowed hours.
func WarningRepeated(name string) string {
	return fmt.Sprintf("WARNING repeated: %s still running outside hours.", name)
}

// Reminder formats the daily-limit-reached record.
func Reminder(name string, playedSeconds int) string {
	return fmt.Sprintf("REMINDER: Daily limit reached for %s (%s).", name, FormatDuration(playedSeconds))
}

// ShutdownTriggered formats the record written right before forcing shutdown.
func ShutdownTriggered(name string) string {
	return fmt.Sprintf("SHUTDOWN TRIGGERED: %s outside hours.", name)
}

// ParseEnded extracts the session name and duration from an ENDED line.
// The line may carry the "[HH:MM:SS] " prefix or not. Parsing is best effort:
// the second return is false for anything that does not match the grammar,
// and callers are expected to skip such lines.
//
// Grammar: name is everything between "ENDED:" and the em-dash separator,
// trimmed; the duration is the integer following "DurationSeconds:", ignoring
// any trailing text.
func ParseEnded(line string) (name string, seconds int, ok bool) {
	_, after, found := strings.Cut(line, endedMarker)
	if !found {
		return "", 0, false
	}
	namePart, secPart, found := strings.Cut(after, durationMarker)
	if !found {
		return "", 0, false
	}
	name, _, _ = strings.Cut(namePart, nameSeparator)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, false
	}
	secStr := strings.TrimSpace(secPart)
	if i := strings.IndexByte(secStr, ' '); i >= 0 {
		secStr = secStr[:i]
	}
	seconds, err := strconv.Atoi(secStr)
	if err != nil || seconds < 0 {
		return "", 0, false
	}
	return name, seconds, true
}

// FormatDuration renders a second count as "2h 5m", or "5 minutes" when the
// duration is under an hour.
func FormatDuration(seconds int) string {
	mins := seconds / 60
	hrs := mins / 60
	mins = mins % 60
	if hrs > 0 {
		return fmt.Sprintf("%dh %dm", hrs, mins)
	}
	return fmt.Sprintf("%d minutes", mins)
}
