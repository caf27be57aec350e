// Package suggest picks positive alternatives to include in popups, so every
// interruption also offers something to do instead.
package suggest

import (
	"math/rand/v2"
	"strings"
)

// DefaultAlternatives is the built-in pool of non-screen activities.
var DefaultAlternatives = []string{
	"Call or text a friend to catch up",
	"Go for a 10–20 minute walk outside",
	"Do a quick 10-minute workout or stretch",
	"Take a short nap to reset",
	"Meditate for 5–10 minutes",
	"Clean or organize one small area",
	"Read a few pages of a book",
	"Listen to music or a podcast",
	"Write down what's on your mind",
	"Make a snack and drink water",
	"Take a shower",
	"Plan tomorrow's tasks",
}

// DefaultGames is the built-in pool of low-stress alternative games.
var DefaultGames = []string{
	"Stardew Valley",
	"Slay the Spire",
	"Tetris",
	"Mini Metro",
	"Dorfromantik",
}

// Pool holds the combined suggestion pool.
type Pool struct {
	options []string
}

// NewPool builds a pool from the alternatives list. When games is non-empty
// a single "try one of these instead" entry summarizing it is added.
func NewPool(alternatives, games []string) *Pool {
	options := make([]string, len(alternatives))
	copy(options, alternatives)
	if len(games) > 0 {
		options = append(options, "Try one of these low-stress games instead: "+strings.Join(games, ", "))
	}
	return &Pool{options: options}
}

// DefaultPool returns a pool over the built-in lists.
func DefaultPool() *Pool {
	return NewPool(DefaultAlternatives, DefaultGames)
}

// Pick returns up to n randomly chosen suggestions as bullet lines joined by
// newlines. Fewer than n are returned when the pool is smaller.
func (p *Pool) Pick(n int) string {
	if n > len(p.options) {
		n = len(p.options)
	}
	if n <= 0 {
		return ""
	}
	lines := make([]string, 0, n)
	for _, i := range rand.Perm(len(p.options))[:n] {
		lines = append(lines, "• "+p.options[i])
	}
	return strings.Join(lines, "\n")
}
