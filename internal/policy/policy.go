package policy

import (
	"fmt"
	"time"
)

// Default schedule values. These mirror the hard limits the tool ships with;
// a config file may override any of them.
const (
	DefaultWeekdayStartHour = 19
	DefaultWeekdayEndHour   = 23
	DefaultWeekendStartHour = 10
	DefaultWeekendEndHour   = 23

	DefaultWeekdayLimitHours = 2
	DefaultWeekendLimitHours = 3
)

// Hours describes the allowed time-of-day windows. Bounds are half-open on
// the hour: [Start, End). Minutes within the boundary hour follow the hour
// component only, so 22:59 is inside a window ending at 23 and 23:00 is not.
type Hours struct {
	WeekdayStart int
	WeekdayEnd   int
	WeekendStart int
	WeekendEnd   int
}

// Limits describes the daily playtime budget in hours.
type Limits struct {
	WeekdayHours float64
	WeekendHours float64
}

// Policy evaluates a timestamp against the configured schedule. All methods
// are pure functions of the receiver and the given time.
type Policy struct {
	Hours  Hours
	Limits Limits
}

// Default returns the built-in schedule: weekdays 19:00-23:00 with a 2 hour
// budget, weekends 10:00-23:00 with a 3 hour budget.
func Default() Policy {
	return Policy{
		Hours: Hours{
			WeekdayStart: DefaultWeekdayStartHour,
			WeekdayEnd:   DefaultWeekdayEndHour,
			WeekendStart: DefaultWeekendStartHour,
			WeekendEnd:   DefaultWeekendEndHour,
		},
		Limits: Limits{
			WeekdayHours: DefaultWeekdayLimitHours,
			WeekendHours: DefaultWeekendLimitHours,
		},
	}
}

// IsWeekend reports whether now falls on Saturday or Sunday.
func (p Policy) IsWeekend(now time.Time) bool {
	wd := now.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsAllowedNow reports whether now is inside the allowed window for its day.
func (p Policy) IsAllowedNow(now time.Time) bool {
	h := now.Hour()
	if p.IsWeekend(now) {
		return h >= p.Hours.WeekendStart && h < p.Hours.WeekendEnd
	}
	return h >= p.Hours.WeekdayStart && h < p.Hours.WeekdayEnd
}

// DailyLimit returns the playtime budget that applies to now's day.
func (p Policy) DailyLimit(now time.Time) time.Duration {
	hours := p.Limits.WeekdayHours
	if p.IsWeekend(now) {
		hours = p.Limits.WeekendHours
	}
	return time.Duration(hours * float64(time.Hour))
}

// LimitHours returns the budget for now's day in hours, for display.
func (p Policy) LimitHours(now time.Time) float64 {
	if p.IsWeekend(now) {
		return p.Limits.WeekendHours
	}
	return p.Limits.WeekdayHours
}

// WindowDescription returns a human-readable description of the window that
// applies to now's day. Display only, never parsed.
func (p Policy) WindowDescription(now time.Time) string {
	if p.IsWeekend(now) {
		return fmt.Sprintf("%02d:00–%02d:00 (Sat–Sun)", p.Hours.WeekendStart, p.Hours.WeekendEnd)
	}
	return fmt.Sprintf("%02d:00–%02d:00 (Mon–Fri)", p.Hours.WeekdayStart, p.Hours.WeekdayEnd)
}
