// Package weekly rebuilds playtime totals from the day logs. There is no
// database behind the report: the logs are re-parsed on every call.
package weekly

import (
	"time"

	"github.com/shovere/game-guard/internal/daylog"
	"github.com/shovere/game-guard/internal/presence"
)

// WeekStart returns the most recent Monday on or before today, at midnight
// in today's location.
func WeekStart(today time.Time) time.Time {
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, today.Location())
}

// Seconds sums the recorded durations of all ENDED records for the watched
// set across the current week, Monday through today inclusive. Lines that do
// not match the grammar are skipped; absent logs contribute zero. The scan
// never fails: a report of 0 is the worst case.
func Seconds(store *daylog.Store, watched presence.Set, today time.Time) int {
	total := 0
	for _, day := range store.Dates(WeekStart(today), today) {
		store.EachLine(day, func(line string) {
			name, secs, ok := daylog.ParseEnded(line)
			if !ok || !watched.Contains(name) {
				return
			}
			total += secs
		})
	}
	return total
}
