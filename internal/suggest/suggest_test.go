package suggest

import (
	"strings"
	"testing"
)

func TestPickReturnsBulletLines(t *testing.T) {
	p := DefaultPool()
	out := p.Pick(5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines: %q", len(lines), out)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "• ") {
			t.Errorf("line not bulleted: %q", l)
		}
	}
}

func TestPickCappedAtPoolSize(t *testing.T) {
	p := NewPool([]string{"a", "b"}, nil)
	out := p.Pick(10)
	if got := len(strings.Split(out, "\n")); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
	if p.Pick(0) != "" {
		t.Fatalf("Pick(0) should be empty")
	}
}

func TestGamesLineAppendedOnlyWhenConfigured(t *testing.T) {
	withGames := NewPool([]string{"a"}, []string{"Tetris", "Mini Metro"})
	found := false
	for range 20 {
		if strings.Contains(withGames.Pick(2), "Tetris, Mini Metro") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("games summary entry never picked from a two-entry pool")
	}

	without := NewPool([]string{"a", "b"}, nil)
	for range 20 {
		if strings.Contains(without.Pick(2), "low-stress games") {
			t.Fatalf("games line present without configured games")
		}
	}
}
