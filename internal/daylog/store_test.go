package daylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shovere/game-guard/internal/policy"
)

func TestAppendFormatsTimestampedLine(t *testing.T) {
	dir := t.TempDir()
	clock := &policy.FixedClock{Current: time.Date(2026, 1, 5, 20, 15, 48, 0, time.Local)}
	s, err := NewStore(dir, clock)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	if err := s.Append(day, Started("Factorio")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	clock.Advance(12 * time.Second)
	if err := s.Append(day, Ended("Factorio", 12)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "2026-01-05.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "[20:15:48] STARTED: Factorio" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "[20:16:00] ENDED: Factorio — DurationSeconds: 12 (0 minutes)" {
		t.Fatalf("line 1 = %q", lines[1])
	}
}

func TestAppendPropagatesIOError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	// Remove the directory out from under the store.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	if err := s.Append(time.Now(), "x"); err == nil {
		t.Fatalf("expected append error on missing directory")
	}
}

func TestDatesSkipsForeignFilesAndRespectsRange(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, name := range []string{
		"2026-01-05.log", "2026-01-07.log", "2026-01-12.log",
		"notes.txt", "not-a-date.log", "2026-13-40.log",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o640); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	from := time.Date(2026, 1, 5, 10, 30, 0, 0, time.Local)
	to := time.Date(2026, 1, 11, 23, 0, 0, 0, time.Local)
	days := s.Dates(from, to)
	if len(days) != 2 {
		t.Fatalf("got %d dates: %v", len(days), days)
	}
	if days[0].Day() != 5 || days[1].Day() != 7 {
		t.Fatalf("unexpected dates: %v", days)
	}
}

func TestEachLineMissingFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	calls := 0
	s.EachLine(time.Now(), func(string) { calls++ })
	if calls != 0 {
		t.Fatalf("EachLine on missing file made %d calls", calls)
	}
}
