package weekly

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shovere/game-guard/internal/daylog"
	"github.com/shovere/game-guard/internal/presence"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		today time.Time
		want  time.Time
	}{
		{day(2026, 1, 5), day(2026, 1, 5)},  // Monday maps to itself
		{day(2026, 1, 7), day(2026, 1, 5)},  // Wednesday
		{day(2026, 1, 10), day(2026, 1, 5)}, // Saturday
		{day(2026, 1, 11), day(2026, 1, 5)}, // Sunday still belongs to Monday's week
		{day(2026, 1, 12), day(2026, 1, 12)},
	}
	for _, c := range cases {
		if got := WeekStart(c.today); !got.Equal(c.want) {
			t.Errorf("WeekStart(%s) = %s, want %s", c.today, got, c.want)
		}
	}
}

func newStore(t *testing.T) *daylog.Store {
	t.Helper()
	s, err := daylog.NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestRoundTripSingleSession(t *testing.T) {
	s := newStore(t)
	today := day(2026, 1, 7)
	if err := s.Append(today, daylog.Started("Factorio")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(today, daylog.Ended("Factorio", 600)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := Seconds(s, presence.NewSet([]string{"Factorio"}), today)
	if got != 600 {
		t.Fatalf("Seconds = %d, want 600", got)
	}
}

func TestMalformedLinesDoNotChangeTotal(t *testing.T) {
	s := newStore(t)
	today := day(2026, 1, 7)
	garbage := []string{
		"not a log line at all",
		"ENDED: broken",
		"ENDED: X — DurationSeconds: NaN",
		"===== NEW DAY =====",
	}
	for _, g := range garbage {
		if err := s.Append(today, g); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := s.Append(today, daylog.Ended("Factorio", 300)); err != nil {
		t.Fatalf("append: %v", err)
	}
	for _, g := range garbage {
		if err := s.Append(today, g); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got := Seconds(s, presence.NewSet([]string{"factorio"}), today)
	if got != 300 {
		t.Fatalf("Seconds = %d, want 300", got)
	}
}

func TestCaseInsensitiveMatchAndUnwatchedExcluded(t *testing.T) {
	s := newStore(t)
	today := day(2026, 1, 7)
	if err := s.Append(today, daylog.Ended("ELDENRING.EXE", 100)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(today, daylog.Ended("SomethingElse", 999)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := Seconds(s, presence.NewSet([]string{"eldenring.exe"}), today)
	if got != 100 {
		t.Fatalf("Seconds = %d, want 100", got)
	}
}

func TestOnlyCurrentWeekCounted(t *testing.T) {
	s := newStore(t)
	today := day(2026, 1, 7)          // Wednesday
	lastWeek := day(2026, 1, 2)       // previous Friday
	monday := day(2026, 1, 5)

	for _, d := range []struct {
		day  time.Time
		secs int
	}{
		{lastWeek, 1000},
		{monday, 200},
		{today, 50},
	} {
		if err := s.Append(d.day, daylog.Ended("Factorio", d.secs)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got := Seconds(s, presence.NewSet([]string{"Factorio"}), today)
	if got != 250 {
		t.Fatalf("Seconds = %d, want 250", got)
	}
}

func TestEmptyAndForeignFilesYieldZero(t *testing.T) {
	s := newStore(t)
	today := day(2026, 1, 7)
	if got := Seconds(s, presence.NewSet([]string{"Factorio"}), today); got != 0 {
		t.Fatalf("Seconds on empty dir = %d, want 0", got)
	}
	// A foreign file with a log extension but no date name is skipped.
	if err := os.WriteFile(filepath.Join(s.Dir(), "readme.log"), []byte("ENDED: Factorio — DurationSeconds: 500\n"), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := Seconds(s, presence.NewSet([]string{"Factorio"}), today); got != 0 {
		t.Fatalf("Seconds with foreign file = %d, want 0", got)
	}
}
