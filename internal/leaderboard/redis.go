package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the sorted set that holds scores.
const DefaultRedisKey = "hangman:scores"

// memberSep splits the user name from the unique suffix in a set member.
// It sorts below every printable byte, so equal scores order by user name.
const memberSep = "\x00"

// RedisStore keeps scores in a Redis sorted set.
// Each member is "<user>\x00<uuid>" so repeated names stay distinct entries.
type RedisStore struct {
	rdb redis.UniversalClient
	key string
}

// NewRedisStore wraps a connected client. An empty key uses DefaultRedisKey.
func NewRedisStore(rdb redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

// Record implements Store.
func (s *RedisStore) Record(ctx context.Context, e Entry) (Entry, error) {
	member := e.User + memberSep + uuid.NewString()
	if err := s.rdb.ZAdd(ctx, s.key, redis.Z{Score: float64(e.Score), Member: member}).Err(); err != nil {
		return Entry{}, fmt.Errorf("zadd %s: %w", s.key, err)
	}
	return e, nil
}

// Query implements Store.
func (s *RedisStore) Query(ctx context.Context, offset, limit int) ([]Entry, error) {
	if err := checkRange(offset, limit); err != nil {
		return nil, err
	}
	out := []Entry{}
	if limit == 0 {
		return out, nil
	}

	zs, err := s.rdb.ZRangeWithScores(ctx, s.key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrange %s: %w", s.key, err)
	}
	for _, z := range zs {
		member, _ := z.Member.(string)
		user, _, _ := strings.Cut(member, memberSep)
		out = append(out, Entry{User: user, Score: int(z.Score)})
	}
	return out, nil
}
