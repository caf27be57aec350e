package presence

import (
	"context"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// Finder is a strategy that answers whether any watched process is currently
// running. Implementations must be safe to call once per polling tick.
type Finder interface {
	// Find returns the display name of the first running watched process.
	// ok is false when none is running. err reports a failure of the query
	// itself, not of individual processes.
	Find(ctx context.Context) (name string, ok bool, err error)
	// Describe returns a human-readable description of the query.
	Describe() string
}

// ProcessFinder scans the system process table for the watched set. Processes
// whose name cannot be read (permission denied, exited between enumeration
// and inspection) are skipped, never treated as a failure.
type ProcessFinder struct {
	set Set
}

// NewProcessFinder returns a finder over the given watched set.
func NewProcessFinder(set Set) *ProcessFinder {
	return &ProcessFinder{set: set}
}

func (f *ProcessFinder) Find(ctx context.Context) (string, bool, error) {
	procs, err := gopsproc.ProcessesWithContext(ctx)
	if err != nil {
		return "", false, err
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		if f.set.Contains(name) {
			return f.set.Display(name), true, nil
		}
	}
	return "", false, nil
}

func (f *ProcessFinder) Describe() string {
	return "proc:" + joinNames(f.set)
}

func joinNames(s Set) string {
	out := ""
	for i, n := range s.Names() {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}
