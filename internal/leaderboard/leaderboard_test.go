package leaderboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/database"
)

func TestValidateUser(t *testing.T) {
	got, err := ValidateUser("  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	_, err = ValidateUser(strings.Repeat("é", MaxUserLength))
	assert.NoError(t, err)

	_, err = ValidateUser("ann lee")
	assert.NoError(t, err)

	for _, bad := range []string{"", "   ", strings.Repeat("x", MaxUserLength+1), "al\x00ice", "bob\n2", "tab\tbed", "\xffal"} {
		_, err := ValidateUser(bad)
		assert.ErrorIs(t, err, ErrInvalidUser, "input %q", bad)
	}
}

func TestNormalizeUser(t *testing.T) {
	assert.Equal(t, "bob", NormalizeUser(" bob "))
	assert.Equal(t, strings.Repeat("x", MaxUserLength), NormalizeUser(strings.Repeat("x", 30)))
	assert.Equal(t, "", NormalizeUser("  "))
	assert.Equal(t, "alice", NormalizeUser("al\x00ice\n"))
	assert.Equal(t, "al", NormalizeUser("\xffal"))
}

// storeContract runs the shared ordering and paging checks against s,
// which must start empty.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	got, err := s.Query(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, e := range []Entry{{"bob", 3}, {"al", 1}, {"zoe", 1}} {
		stored, err := s.Record(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, e, stored)
	}

	got, err = s.Query(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"al", 1}, {"zoe", 1}}, got)

	got, err = s.Query(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"bob", 3}}, got)

	got, err = s.Query(ctx, 5, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Query(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Duplicate names are separate entries; prefixes sort first.
	_, err = s.Record(ctx, Entry{"al", 1})
	require.NoError(t, err)
	_, err = s.Record(ctx, Entry{"alan", 1})
	require.NoError(t, err)
	got, err = s.Query(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"al", 1}, {"al", 1}, {"alan", 1}, {"zoe", 1}, {"bob", 3}}, got)

	_, err = s.Query(ctx, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = s.Query(ctx, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSQLStoreSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.SQLite, filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db, database.SQLite))

	storeContract(t, NewSQLStore(db, database.SQLite))
}

func TestSQLStorePostgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	db, err := database.Open(ctx, database.Postgres, dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db, database.Postgres))
	_, err = db.ExecContext(ctx, `TRUNCATE scores`)
	require.NoError(t, err)

	storeContract(t, NewSQLStore(db, database.Postgres))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	key := "hangman:test:" + strings.ReplaceAll(t.Name(), "/", ":")
	require.NoError(t, rdb.Del(ctx, key).Err())
	t.Cleanup(func() { rdb.Del(context.Background(), key) })

	storeContract(t, NewRedisStore(rdb, key))
}

func TestNewRedisStoreDefaultKey(t *testing.T) {
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	assert.Equal(t, DefaultRedisKey, s.key)
}
