// internal/words/words.go
//
// Provides the phrase pool for the game engine.
//
// Responsibilities:
//   - Load the phrase pool from an environment-provided file or fall back to
//     the embedded default pool.
//   - Supply utility functions like RandomPhrase, Phrases and Count.
//
// Initialization behavior (Init):
//   1. If PHRASES_FILE is set, load one phrase per line from that file.
//   2. Otherwise use the embedded phrases.txt
//      (3dhubs, marvin, print, filament, order, layer).
//
// Constraints:
//   • Phrases are trimmed; blank lines and "#" comments are skipped.
//   • Phrases keep their case; guessing is case-insensitive anyway.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"io"
	"math/big"
	"os"
	"strings"
	"sync"
)

//go:embed phrases.txt
var embeddedPhrases string

var (
	initOnce   sync.Once
	phrases    []string
	initialErr error
)

// ErrEmpty is returned when a phrase source yields no phrases.
var ErrEmpty = errors.New("words: phrase list is empty")

// Init loads the phrase pool exactly once.
func Init() error {
	initOnce.Do(func() {
		list := Parse(strings.NewReader(embeddedPhrases))
		if path := os.Getenv("PHRASES_FILE"); path != "" {
			var err error
			list, err = Load(path)
			if err != nil {
				initialErr = err
				return
			}
		}
		if len(list) == 0 {
			initialErr = ErrEmpty
			return
		}
		phrases = list
	})
	return initialErr
}

// Load reads one phrase per line from a file.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	list := Parse(f)
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	return list, nil
}

// Parse reads phrases from r, skipping blanks and comments.
func Parse(r io.Reader) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p := strings.TrimSpace(sc.Text())
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Default returns a copy of the embedded phrase pool.
func Default() []string {
	return Parse(strings.NewReader(embeddedPhrases))
}

// Phrases returns a copy of the loaded pool (the default pool before Init).
func Phrases() []string {
	if len(phrases) == 0 {
		return Default()
	}
	return append([]string(nil), phrases...)
}

// RandomPhrase returns a uniformly random phrase from the loaded pool.
func RandomPhrase() string {
	return Pick(Phrases())
}

// Pick returns a uniformly random element of list using crypto/rand.
// If list is empty it falls back to "hangman".
func Pick(list []string) string {
	if len(list) == 0 {
		return "hangman"
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return list[0]
	}
	return list[n.Int64()]
}

// Count returns the number of phrases in the pool.
func Count() int {
	return len(Phrases())
}
