// internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Create new games, or resume one from serialized state.
//   - Validate and apply single-character guesses.
//   - Track state transitions: in_progress → won/lost.
//   - Produce the masked display phrase.
//
// Notes:
//   - Guesses are case-insensitive; the phrase keeps its case for display.
//   - The space character is pre-seeded as guessed so multi-word phrases
//     show their separators without costing a try.
package game

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const separator = " "

// New constructs a fresh game for phrase.
func New(phrase string) *Game {
	return Resume(phrase, nil, 0)
}

// Resume rebuilds a game from previously saved state.
// An empty guesses set defaults to the separator only; negative tries are
// treated as zero.
func Resume(phrase string, guesses []string, tries int) *Game {
	g := &Game{
		phrase:  phrase,
		lower:   strings.ToLower(phrase),
		guessed: make(map[string]struct{}, len(guesses)+1),
	}
	if len(guesses) == 0 {
		g.guessed[separator] = struct{}{}
	}
	for _, c := range guesses {
		g.guessed[strings.ToLower(c)] = struct{}{}
	}
	if tries > 0 {
		g.tries = tries
	}
	return g
}

// IsGuessValid reports whether input is exactly one letter or number that
// has not been guessed yet (in any case). It has no side effects.
func (g *Game) IsGuessValid(input string) bool {
	if utf8.RuneCountInString(input) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(input)
	if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsNumber(r)) {
		return false
	}
	_, seen := g.guessed[strings.ToLower(input)]
	return !seen
}

// Guess validates and applies one guess.
//
// Validation rules:
//   - Game must not be over (ErrGameOver).
//   - Input must pass IsGuessValid (ErrInvalidGuess).
//
// A rejected guess leaves the game untouched. An accepted guess is recorded
// and, if the character does not occur in the phrase, costs one try.
func (g *Game) Guess(input string) (Outcome, error) {
	if g.IsGameOver() {
		return "", ErrGameOver
	}
	if !g.IsGuessValid(input) {
		return "", ErrInvalidGuess
	}

	c := strings.ToLower(input)
	g.guessed[c] = struct{}{}
	if !strings.Contains(g.lower, c) {
		g.tries++
		return OutcomeMiss, nil
	}
	return OutcomeHit, nil
}

// covered reports whether every character of the phrase has been guessed.
func (g *Game) covered() bool {
	for _, r := range g.lower {
		if _, ok := g.guessed[string(r)]; !ok {
			return false
		}
	}
	return true
}

// IsGameOver is true once the try limit is reached or the phrase is solved.
func (g *Game) IsGameOver() bool {
	return g.tries >= MaximumTries || g.covered()
}

// IsGameWon is true when the phrase is solved within the try limit.
// A correct guess never increments tries, so win and loss cannot coincide.
func (g *Game) IsGameWon() bool {
	return g.covered() && g.tries < MaximumTries
}

// Status reports a coarse representation of the current game state.
func (g *Game) Status() Status {
	switch {
	case g.IsGameWon():
		return StatusWon
	case g.IsGameOver():
		return StatusLost
	default:
		return StatusInProgress
	}
}

// DisplayPhrase returns the phrase with unguessed characters replaced by "_".
// The result has the same number of characters as the phrase.
func (g *Game) DisplayPhrase() string {
	var b strings.Builder
	b.Grow(len(g.phrase))
	for _, r := range g.phrase {
		if _, ok := g.guessed[strings.ToLower(string(r))]; ok {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Guesses returns a sorted copy of the guessed characters, without the
// separator. Mutating the result does not affect the game.
func (g *Game) Guesses() []string {
	out := make([]string, 0, len(g.guessed))
	for c := range g.guessed {
		if c == separator {
			continue
		}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Tries returns the number of incorrect guesses.
func (g *Game) Tries() int { return g.tries }

// Phrase returns the unmasked phrase.
func (g *Game) Phrase() string { return g.phrase }

// State snapshots the game for rendering.
func (g *Game) State() State {
	return State{
		Tries:    g.tries,
		Guesses:  g.Guesses(),
		Phrase:   g.DisplayPhrase(),
		GameOver: g.IsGameOver(),
		GameWon:  g.IsGameWon(),
	}
}

// Clone returns a deep copy.
func (g *Game) Clone() *Game {
	c := &Game{
		phrase:  g.phrase,
		lower:   g.lower,
		guessed: make(map[string]struct{}, len(g.guessed)),
		tries:   g.tries,
	}
	for k := range g.guessed {
		c.guessed[k] = struct{}{}
	}
	return c
}

// Spaced puts a space between characters so masked phrases stay readable.
func Spaced(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, 2*len(rs))
	for i, r := range rs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return string(out)
}
