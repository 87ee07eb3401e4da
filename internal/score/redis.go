package score

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// PlayerScore is one player's running total within a chat room.
type PlayerScore struct {
	Name  string
	Score int64
}

// Store keeps per-player scores in Redis under
// <namespace>:<chat_id>:<player>. Adjustments are single INCRBY/DECRBY
// calls so concurrent answers never lose updates.
type Store struct {
	rdb       *redis.Client
	namespace string
}

func New(rdb *redis.Client, namespace string) *Store {
	return &Store{rdb: rdb, namespace: strings.TrimSpace(namespace)}
}

func (s *Store) key(chatID int64, player string) string {
	return fmt.Sprintf("%s:%d:%s", s.namespace, chatID, player)
}

func (s *Store) Incr(ctx context.Context, chatID int64, player string, delta int) error {
	return s.rdb.IncrBy(ctx, s.key(chatID, player), int64(delta)).Err()
}

func (s *Store) Decr(ctx context.Context, chatID int64, player string, delta int) error {
	return s.rdb.DecrBy(ctx, s.key(chatID, player), int64(delta)).Err()
}

// Scores lists every known player of the chat room with their current
// total, sorted by player name.
func (s *Store) Scores(ctx context.Context, chatID int64) ([]PlayerScore, error) {
	pattern := fmt.Sprintf("%s:%d:*", s.namespace, chatID)
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("list score keys: %w", err)
	}

	out := make([]PlayerScore, 0, len(keys))
	for _, k := range keys {
		val, err := s.rdb.Get(ctx, k).Int64()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read score %s: %w", k, err)
		}
		name := k[strings.LastIndexByte(k, ':')+1:]
		out = append(out, PlayerScore{Name: name, Score: val})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
