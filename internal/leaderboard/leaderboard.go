// Package leaderboard persists finished-game scores.
//
// Entries are (user, score) pairs where score is the number of incorrect
// tries used to win; lower is better. Entries are append-only and are read
// back ordered by score, then user name.
package leaderboard

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxUserLength is the longest user name accepted, in characters.
const MaxUserLength = 20

var (
	// ErrInvalidUser is returned for empty or oversized user names.
	ErrInvalidUser = errors.New("invalid user name")

	// ErrInvalidRange is returned for negative offsets or limits.
	ErrInvalidRange = errors.New("invalid offset or limit")
)

// Entry is one stored score.
type Entry struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// Store is the leaderboard persistence contract.
type Store interface {
	// Record persists one entry. Callers validate the user name first.
	Record(ctx context.Context, e Entry) (Entry, error)

	// Query returns at most limit entries after skipping offset, ordered by
	// score ascending then user ascending.
	Query(ctx context.Context, offset, limit int) ([]Entry, error)
}

// ValidateUser trims name and checks it is 1..MaxUserLength printable
// characters.
func ValidateUser(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxUserLength {
		return "", ErrInvalidUser
	}
	if !utf8.ValidString(name) || strings.IndexFunc(name, notPrintable) >= 0 {
		return "", ErrInvalidUser
	}
	return name, nil
}

func notPrintable(r rune) bool { return !unicode.IsPrint(r) }

// NormalizeUser drops non-printable characters, trims name and truncates it
// to MaxUserLength characters. The result may be empty.
func NormalizeUser(name string) string {
	name = strings.ToValidUTF8(name, "")
	name = strings.Map(func(r rune) rune {
		if notPrintable(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxUserLength {
		return name
	}
	return strings.TrimSpace(string([]rune(name)[:MaxUserLength]))
}

func checkRange(offset, limit int) error {
	if offset < 0 || limit < 0 {
		return ErrInvalidRange
	}
	return nil
}
