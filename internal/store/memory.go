// internal/store/memory.go
//
// In-memory game registry.
// Maps opaque identifiers to live *game.Game values for the lifetime of a
// game: created on "play", removed on exit, score submission, explicit
// delete, or (optionally) expiry.
//
// Characteristics:
//   - Concurrency-safe via a single Mutex; every operation is a short
//     critical section, so identifier generation and insert cannot race and
//     a guess cannot run against a game that is being deleted.
//   - The registry owns its games. Get hands out copies; Update runs a
//     callback under the lock. Finish runs its callback outside the lock
//     against a frozen snapshot, so slow work (leaderboard writes) never
//     stalls other games.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

var (
	// ErrNotFound is returned for identifiers with no live game.
	ErrNotFound = errors.New("game not found")
	// ErrFinishing is returned while a Finish on the same game is in flight.
	ErrFinishing = errors.New("game is being finished")
)

// Store defines the registry interface for game sessions.
type Store interface {
	// Create registers a new game with a random phrase and returns its
	// identifier and a copy of the game.
	Create(ctx context.Context) (string, *game.Game, error)

	// Get returns a copy of the game.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn against the live game under the registry lock.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error

	// Finish freezes the game, runs fn against a snapshot without holding
	// the registry lock, and removes the game if fn returns nil. While fn
	// runs, Update, Delete and Finish on the same id return ErrFinishing.
	Finish(ctx context.Context, id string, fn func(*game.Game) error) error

	// Delete removes the game. Deleting an unknown id returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all live identifiers, sorted.
	List(ctx context.Context) ([]string, error)
}

type entry struct {
	game      *game.Game
	touched   time.Time
	finishing bool
}

// Memory is the in-memory Store implementation.
type Memory struct {
	mu    sync.Mutex        // guards games
	games map[string]*entry // keyed by identifier

	ttl    time.Duration
	now    func() time.Time
	nextID func() uint32
	phrase func() string
}

// Option configures a Memory registry.
type Option func(*Memory)

// WithTTL evicts games that have not been touched for d. Zero disables expiry.
func WithTTL(d time.Duration) Option { return func(m *Memory) { m.ttl = d } }

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option { return func(m *Memory) { m.now = now } }

// WithIDSource overrides the 32-bit random source used for identifiers.
func WithIDSource(next func() uint32) Option { return func(m *Memory) { m.nextID = next } }

// WithPhraseSource overrides the phrase picker.
func WithPhraseSource(next func() string) Option { return func(m *Memory) { m.phrase = next } }

// NewMemoryStore constructs an empty registry.
func NewMemoryStore(opts ...Option) *Memory {
	m := &Memory{
		games:  make(map[string]*entry),
		now:    time.Now,
		nextID: randomUint32,
		phrase: words.RandomPhrase,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// FormatID renders a 32-bit token as a 30-character zero-padded hex string.
func FormatID(n uint32) string {
	return fmt.Sprintf("%030x", n)
}

// newIDLocked re-rolls until the identifier is unused. Caller holds m.mu.
func (m *Memory) newIDLocked() string {
	for {
		id := FormatID(m.nextID())
		if _, taken := m.games[id]; !taken {
			return id
		}
		log.Debug().Str("gameId", id).Msg("identifier collision, re-rolling")
	}
}

// Create implements Store.
func (m *Memory) Create(ctx context.Context) (string, *game.Game, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	g := game.New(m.phrase())

	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.newIDLocked()
	m.games[id] = &entry{game: g, touched: m.now()}
	return id, g.Clone(), nil
}

// lookupLocked returns the live entry, treating expired ones as absent.
func (m *Memory) lookupLocked(id string) (*entry, error) {
	e, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if m.expired(e, m.now()) {
		delete(m.games, id)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// lookupIdleLocked is lookupLocked for mutating operations.
func (m *Memory) lookupIdleLocked(id string) (*entry, error) {
	e, err := m.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	if e.finishing {
		return nil, fmt.Errorf("%w: %s", ErrFinishing, id)
	}
	return e, nil
}

// expired reports whether e is past its TTL. Finishing entries never expire.
func (m *Memory) expired(e *entry, now time.Time) bool {
	return m.ttl > 0 && !e.finishing && now.Sub(e.touched) > m.ttl
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	e.touched = m.now()
	return e.game.Clone(), nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookupIdleLocked(id)
	if err != nil {
		return err
	}
	e.touched = m.now()
	return fn(e.game)
}

// Finish implements Store.
func (m *Memory) Finish(ctx context.Context, id string, fn func(*game.Game) error) error {
	m.mu.Lock()
	e, err := m.lookupIdleLocked(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	e.finishing = true
	snapshot := e.game.Clone()
	m.mu.Unlock()

	done := false
	defer func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if done {
			delete(m.games, id)
			return
		}
		e.finishing = false
		e.touched = m.now()
	}()

	if err := fn(snapshot); err != nil {
		return err
	}
	done = true
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookupIdleLocked(id); err != nil {
		return err
	}
	delete(m.games, id)
	return nil
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	out := make([]string, 0, len(m.games))
	for id, e := range m.games {
		if m.expired(e, now) {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// Len returns the number of stored games, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

// Sweep removes expired games and returns how many were evicted.
func (m *Memory) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if m.expired(e, now) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done. It returns immediately when
// expiry is disabled.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(m.now()); n > 0 {
				log.Info().Int("evicted", n).Msg("expired games swept")
			}
		}
	}
}

// randomUint32 draws 32 bits from crypto/rand.
func randomUint32() uint32 {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return binary.BigEndian.Uint32(b[:])
}
