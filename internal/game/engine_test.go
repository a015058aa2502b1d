package game

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play applies each guess and fails the test on any rejection.
func play(t *testing.T, g *Game, guesses ...string) {
	t.Helper()
	for _, c := range guesses {
		_, err := g.Guess(c)
		require.NoError(t, err, "guess %q", c)
	}
}

func TestNewGame(t *testing.T) {
	g := New("print")

	assert.Equal(t, "print", g.Phrase())
	assert.Equal(t, 0, g.Tries())
	assert.Empty(t, g.Guesses())
	assert.Equal(t, "_____", g.DisplayPhrase())
	assert.False(t, g.IsGameOver())
	assert.False(t, g.IsGameWon())
	assert.Equal(t, StatusInProgress, g.Status())
}

func TestIsGuessValid(t *testing.T) {
	g := New("print")

	cases := []struct {
		in   string
		want bool
	}{
		{"a", true},
		{"A", true},
		{"3", true},
		{"é", true},
		{"½", true},
		{"²", true},
		{"Ⅻ", true},
		{"", false},
		{"ab", false},
		{"-", false},
		{" ", false},
		{"?", false},
		{"\xff", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.IsGuessValid(tc.in), "input %q", tc.in)
	}
}

func TestIsGuessValidRejectsRepeatRegardlessOfCase(t *testing.T) {
	g := New("print")
	play(t, g, "a")

	assert.False(t, g.IsGuessValid("a"))
	assert.False(t, g.IsGuessValid("A"))

	play(t, g, "P")
	assert.False(t, g.IsGuessValid("p"))
}

func TestWinningSequence(t *testing.T) {
	g := New("print")
	play(t, g, "p", "r", "i", "n", "t")

	assert.Equal(t, 0, g.Tries())
	assert.True(t, g.IsGameOver())
	assert.True(t, g.IsGameWon())
	assert.Equal(t, "print", g.DisplayPhrase())
	assert.Equal(t, StatusWon, g.Status())
}

func TestLosingSequence(t *testing.T) {
	g := New("print")
	play(t, g, "x", "y", "z", "w", "q")

	assert.Equal(t, 5, g.Tries())
	assert.True(t, g.IsGameOver())
	assert.False(t, g.IsGameWon())
	assert.Equal(t, StatusLost, g.Status())
}

func TestGuessOutcome(t *testing.T) {
	g := New("Marvin")

	out, err := g.Guess("m")
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, out)
	assert.Equal(t, 0, g.Tries())

	out, err = g.Guess("Z")
	require.NoError(t, err)
	assert.Equal(t, OutcomeMiss, out)
	assert.Equal(t, 1, g.Tries())
	assert.Equal(t, []string{"m", "z"}, g.Guesses())
}

func TestRejectedGuessDoesNotMutate(t *testing.T) {
	g := New("order")
	play(t, g, "o", "x")
	before := g.State()

	for _, in := range []string{"", "ab", "-", "O", "x"} {
		_, err := g.Guess(in)
		assert.ErrorIs(t, err, ErrInvalidGuess, "input %q", in)
	}
	assert.Equal(t, before, g.State())
}

func TestGuessAfterGameOver(t *testing.T) {
	g := New("layer")
	play(t, g, "l", "a", "y", "e", "r")

	_, err := g.Guess("q")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 0, g.Tries())

	lost := New("layer")
	play(t, lost, "1", "2", "3", "4", "5")
	_, err = lost.Guess("l")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, MaximumTries, lost.Tries())
}

func TestWonGameNeverAtTryLimit(t *testing.T) {
	g := New("order")
	play(t, g, "a", "b", "c", "d", "o", "r", "e")

	assert.True(t, g.IsGameWon())
	assert.Less(t, g.Tries(), MaximumTries)
}

func TestDisplayPhraseKeepsCaseAndLength(t *testing.T) {
	g := New("3D Hubs")
	assert.Equal(t, "__ ____", g.DisplayPhrase())

	play(t, g, "d", "H", "3")
	assert.Equal(t, "3D H___", g.DisplayPhrase())
	assert.Equal(t, utf8.RuneCountInString("3D Hubs"), utf8.RuneCountInString(g.DisplayPhrase()))
}

func TestDisplayPhraseOnlyRevealsGuessed(t *testing.T) {
	for _, phrase := range []string{"3dhubs", "marvin", "print", "filament", "order", "layer"} {
		g := New(phrase)
		for _, c := range []string{"a", "e", "i", "x", "3"} {
			_, _ = g.Guess(c)
			shown := []rune(g.DisplayPhrase())
			require.Len(t, shown, utf8.RuneCountInString(phrase))
			for i, r := range []rune(phrase) {
				if shown[i] == '_' {
					continue
				}
				assert.Equal(t, r, shown[i])
				assert.Contains(t, g.Guesses(), string(r))
			}
		}
	}
}

func TestGuessesIsACopy(t *testing.T) {
	g := New("print")
	play(t, g, "p")

	got := g.Guesses()
	got[0] = "z"
	assert.Equal(t, []string{"p"}, g.Guesses())
	assert.True(t, g.IsGuessValid("z"))
}

func TestResume(t *testing.T) {
	assert.Equal(t, New("print").State(), Resume("print", nil, 0).State())
	assert.Equal(t, New("print").State(), Resume("print", []string{}, -3).State())

	g := Resume("print", []string{" ", "P", "x"}, 1)
	assert.Equal(t, 1, g.Tries())
	assert.Equal(t, []string{"p", "x"}, g.Guesses())
	assert.Equal(t, "p____", g.DisplayPhrase())
	assert.False(t, g.IsGuessValid("x"))

	play(t, g, "r", "i", "n", "t")
	assert.True(t, g.IsGameWon())
}

func TestClone(t *testing.T) {
	g := New("filament")
	play(t, g, "f")

	c := g.Clone()
	play(t, c, "z")

	assert.Equal(t, 0, g.Tries())
	assert.Equal(t, []string{"f"}, g.Guesses())
	assert.Equal(t, 1, c.Tries())
}

func TestState(t *testing.T) {
	g := New("print")
	play(t, g, "p", "q")

	assert.Equal(t, State{
		Tries:    1,
		Guesses:  []string{"p", "q"},
		Phrase:   "p____",
		GameOver: false,
		GameWon:  false,
	}, g.State())
}

func TestSpaced(t *testing.T) {
	assert.Equal(t, "p _ _ n _", Spaced("p__n_"))
	assert.Equal(t, "h é", Spaced("hé"))
	assert.Equal(t, "", Spaced(""))
}
