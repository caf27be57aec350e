package presence

import (
	"sort"
	"strings"
)

// Set is the monitored set of process names. Identity is case-insensitive;
// the value kept per key is the name as the user supplied it, used for
// display. Immutable after construction.
type Set struct {
	byLower map[string]string
}

// NewSet builds a set from the configured names. Empty entries are dropped;
// when two entries differ only by case the first one wins.
func NewSet(names []string) Set {
	m := make(map[string]string, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := m[key]; !dup {
			m[key] = n
		}
	}
	return Set{byLower: m}
}

// Len returns the number of watched names.
func (s Set) Len() int { return len(s.byLower) }

// Contains reports whether name matches a watched entry, ignoring case.
func (s Set) Contains(name string) bool {
	_, ok := s.byLower[strings.ToLower(name)]
	return ok
}

// Display returns the configured spelling for name, or name itself when it
// is not watched.
func (s Set) Display(name string) string {
	if d, ok := s.byLower[strings.ToLower(name)]; ok {
		return d
	}
	return name
}

// Names returns the configured spellings, sorted for stable display.
func (s Set) Names() []string {
	out := make([]string, 0, len(s.byLower))
	for _, v := range s.byLower {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
