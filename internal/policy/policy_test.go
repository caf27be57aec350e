package policy

import (
	"testing"
	"time"
)

// 2026-01-05 is a Monday, 2026-01-03 a Saturday.
func weekdayAt(hour, minute int) time.Time {
	return time.Date(2026, 1, 5, hour, minute, 0, 0, time.Local)
}

func weekendAt(hour, minute int) time.Time {
	return time.Date(2026, 1, 3, hour, minute, 0, 0, time.Local)
}

func TestIsWeekend(t *testing.T) {
	p := Default()
	if p.IsWeekend(weekdayAt(12, 0)) {
		t.Fatalf("Monday counted as weekend")
	}
	if !p.IsWeekend(weekendAt(12, 0)) {
		t.Fatalf("Saturday not counted as weekend")
	}
	sunday := time.Date(2026, 1, 4, 12, 0, 0, 0, time.Local)
	if !p.IsWeekend(sunday) {
		t.Fatalf("Sunday not counted as weekend")
	}
}

func TestIsAllowedNowBoundaries(t *testing.T) {
	p := Default()
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"weekday start hour minute 00", weekdayAt(19, 0), true},
		{"weekday start hour minute 59", weekdayAt(19, 59), true},
		{"weekday just before window", weekdayAt(18, 59), false},
		{"weekday last allowed minute", weekdayAt(22, 59), true},
		{"weekday end hour minute 00", weekdayAt(23, 0), false},
		{"weekday end hour minute 59", weekdayAt(23, 59), false},
		{"weekday early morning", weekdayAt(2, 30), false},
		{"weekend start hour minute 00", weekendAt(10, 0), true},
		{"weekend just before window", weekendAt(9, 59), false},
		{"weekend last allowed minute", weekendAt(22, 59), true},
		{"weekend end hour", weekendAt(23, 0), false},
	}
	for _, c := range cases {
		if got := p.IsAllowedNow(c.now); got != c.want {
			t.Errorf("%s: IsAllowedNow(%s) = %v, want %v", c.name, c.now, got, c.want)
		}
	}
}

func TestDailyLimit(t *testing.T) {
	p := Default()
	if got := p.DailyLimit(weekdayAt(20, 0)); got != 2*time.Hour {
		t.Fatalf("weekday limit = %s, want 2h", got)
	}
	if got := p.DailyLimit(weekendAt(20, 0)); got != 3*time.Hour {
		t.Fatalf("weekend limit = %s, want 3h", got)
	}
	half := Policy{Limits: Limits{WeekdayHours: 1.5, WeekendHours: 3}}
	if got := half.DailyLimit(weekdayAt(20, 0)); got != 90*time.Minute {
		t.Fatalf("fractional limit = %s, want 90m", got)
	}
}

func TestWindowDescription(t *testing.T) {
	p := Default()
	if got := p.WindowDescription(weekdayAt(12, 0)); got != "19:00–23:00 (Mon–Fri)" {
		t.Fatalf("weekday description = %q", got)
	}
	if got := p.WindowDescription(weekendAt(12, 0)); got != "10:00–23:00 (Sat–Sun)" {
		t.Fatalf("weekend description = %q", got)
	}
}

func TestFixedClock(t *testing.T) {
	c := &FixedClock{Current: weekdayAt(19, 0)}
	c.Advance(5 * time.Second)
	if got := c.Now(); !got.Equal(weekdayAt(19, 0).Add(5 * time.Second)) {
		t.Fatalf("advance: got %s", got)
	}
}
