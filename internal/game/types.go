// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Status: coarse lifecycle state of a game.
//   - Outcome: result of a single accepted guess (hit/miss).
//   - Game: state for a single in-progress or finished game.
//   - State: read-only snapshot handed to the API and templates.

package game

import "errors"

// MaximumTries is the number of incorrect guesses that ends a game in a loss.
const MaximumTries = 5

// Status represents the lifecycle state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Outcome is the evaluation of one accepted guess.
//   - "hit":  the character occurs somewhere in the phrase.
//   - "miss": it does not; the try counter went up by one.
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeMiss Outcome = "miss"
)

var (
	// ErrInvalidGuess is returned for anything that is not a single,
	// not yet guessed, letter or digit.
	ErrInvalidGuess = errors.New("invalid guess")

	// ErrGameOver is returned when guessing on a finished game.
	ErrGameOver = errors.New("game over")

	// ErrNotWon is returned by callers that require a won game (score submission).
	ErrNotWon = errors.New("game not won")
)

// Game holds the state of a single Hangman game.
// It is not safe for concurrent use; the registry serializes access.
type Game struct {
	phrase  string              // secret phrase, original case
	lower   string              // phrase, lowercased once
	guessed map[string]struct{} // lowercase characters tried so far, including " "
	tries   int                 // incorrect guesses only
}

// State is a value snapshot of a game suitable for rendering.
type State struct {
	Tries    int      `json:"tries"`
	Guesses  []string `json:"guesses"`
	Phrase   string   `json:"phrase"` // masked
	GameOver bool     `json:"game_over"`
	GameWon  bool     `json:"game_won"`
}
