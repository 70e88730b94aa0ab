// Package leaderboard serves top-player reads through an optional
// read-through cache. The store stays the source of truth; the cache only
// absorbs repeated reads from the chat and HTTP surfaces.
package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"quizbot/internal/quiz"
)

// ErrCacheMiss is returned by a Cache when the key has no entry.
var ErrCacheMiss = errors.New("cache miss")

// Source is the durable leaderboard read, normally the profile store.
type Source interface {
	TopN(ctx context.Context, n int) ([]quiz.LeaderboardEntry, error)
}

// Cache is the byte-level cache slice the leaderboard needs. Implementations
// report absent keys as ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

type Service struct {
	source Source
	cache  Cache // nil disables caching
	ttl    time.Duration
	log    *zap.SugaredLogger
}

func New(source Source, cache Cache, ttl time.Duration, log *zap.SugaredLogger) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{source: source, cache: cache, ttl: ttl, log: log}
}

// Top returns up to n leaderboard entries. Any cache failure degrades to a
// direct store read; the leaderboard never becomes unavailable because the
// cache is.
func (s *Service) Top(ctx context.Context, n int) ([]quiz.LeaderboardEntry, error) {
	if n <= 0 {
		n = 10
	}
	key := cacheKey(n)

	if s.cache != nil {
		payload, err := s.cache.Get(ctx, key)
		if err == nil {
			var entries []quiz.LeaderboardEntry
			if err := json.Unmarshal(payload, &entries); err == nil {
				return entries, nil
			}
			s.log.Warnw("discarding unreadable leaderboard cache entry", "key", key)
		} else if !errors.Is(err, ErrCacheMiss) {
			s.log.Warnw("leaderboard cache read failed", "key", key, "error", err)
		}
	}

	entries, err := s.source.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
				s.log.Warnw("leaderboard cache write failed", "key", key, "error", err)
			}
		}
	}
	return entries, nil
}

func cacheKey(n int) string {
	return fmt.Sprintf("quizbot:leaderboard:top:%d", n)
}
