package daylog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shovere/game-guard/internal/policy"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	logExt     = ".log"
)

// Store is the append-only per-day log store. One text file per calendar
// date under dir, named <ISO date>.log. Single writer, single process; no
// locking discipline is required.
type Store struct {
	dir   string
	clock policy.Clock
}

// NewStore creates the log directory if needed and returns a store over it.
func NewStore(dir string, clock policy.Clock) (*Store, error) {
	if clock == nil {
		clock = policy.RealClock{}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &Store{dir: dir, clock: clock}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Path returns the log file path for the given date.
func (s *Store) Path(day time.Time) string {
	return filepath.Join(s.dir, day.Format(dateLayout)+logExt)
}

// Append writes one timestamped line to the file for day, creating it on
// first write. The timestamp is the current local time regardless of day.
// I/O errors propagate: the logs are the accounting source and silently
// dropping records would corrupt the weekly totals.
func (s *Store) Append(day time.Time, text string) error {
	f, err := os.OpenFile(s.Path(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("open day log: %w", err)
	}
	line := fmt.Sprintf("[%s] %s\n", s.clock.Now().Format(timeLayout), text)
	_, werr := f.WriteString(line)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("append day log: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close day log: %w", cerr)
	}
	return nil
}

// Dates returns the dates within [from, to] (inclusive, by calendar day) for
// which a log file exists, sorted ascending. Files whose name is not a valid
// ISO date are skipped so foreign files never break aggregation.
func (s *Store) Dates(from, to time.Time) []time.Time {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	var out []time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), logExt) {
			continue
		}
		day, err := time.ParseInLocation(dateLayout, strings.TrimSuffix(e.Name(), logExt), from.Location())
		if err != nil {
			continue
		}
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// EachLine calls fn for every line in day's log file, in order. A missing
// file yields no calls; a read error mid-file stops the iteration. Both are
// silent: readers of the day logs are best effort by design.
func (s *Store) EachLine(day time.Time, fn func(line string)) {
	f, err := os.Open(s.Path(day))
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fn(sc.Text())
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
