package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"quizbot/internal/quiz"
)

type fakeSource struct {
	entries []quiz.LeaderboardEntry
	err     error
	calls   int
	lastN   int
}

func (f *fakeSource) TopN(_ context.Context, n int) ([]quiz.LeaderboardEntry, error) {
	f.calls++
	f.lastN = n
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func TestTopWithoutCacheReadsSource(t *testing.T) {
	source := &fakeSource{
		entries: []quiz.LeaderboardEntry{
			{DisplayName: "alice", TotalScore: 5},
			{DisplayName: "bob", TotalScore: 2},
		},
	}
	service := New(source, nil, 0, zap.NewNop().Sugar())

	entries, err := service.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(entries) != 2 || entries[0].DisplayName != "alice" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if source.calls != 1 || source.lastN != 10 {
		t.Fatalf("unexpected source usage: calls=%d n=%d", source.calls, source.lastN)
	}

	// Without a cache every read goes to the store.
	if _, err := service.Top(context.Background(), 10); err != nil {
		t.Fatalf("second Top failed: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("source calls = %d, want 2", source.calls)
	}
}

func TestTopDefaultsNonPositiveLimit(t *testing.T) {
	source := &fakeSource{}
	service := New(source, nil, 0, zap.NewNop().Sugar())

	if _, err := service.Top(context.Background(), 0); err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if source.lastN != 10 {
		t.Fatalf("limit not defaulted: %d", source.lastN)
	}
}

func TestTopPropagatesSourceError(t *testing.T) {
	bang := errors.New("store down")
	service := New(&fakeSource{err: bang}, nil, 0, zap.NewNop().Sugar())

	if _, err := service.Top(context.Background(), 5); !errors.Is(err, bang) {
		t.Fatalf("Top error = %v, want %v", err, bang)
	}
}

type fakeCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	sets    int
	lastTTL time.Duration
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	payload, ok := f.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return payload, nil
}

func (f *fakeCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.data[key] = payload
	f.sets++
	f.lastTTL = ttl
	return nil
}

func TestTopCacheHitSkipsSource(t *testing.T) {
	cached := []quiz.LeaderboardEntry{{DisplayName: "alice", TotalScore: 5}}
	payload, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	source := &fakeSource{}
	cache := &fakeCache{data: map[string][]byte{cacheKey(10): payload}}
	service := New(source, cache, time.Minute, zap.NewNop().Sugar())

	entries, err := service.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(entries) != 1 || entries[0].DisplayName != "alice" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if source.calls != 0 {
		t.Fatalf("cache hit still read the source %d times", source.calls)
	}
}

func TestTopCacheMissPopulatesCache(t *testing.T) {
	source := &fakeSource{entries: []quiz.LeaderboardEntry{{DisplayName: "bob", TotalScore: 2}}}
	cache := &fakeCache{}
	service := New(source, cache, time.Minute, zap.NewNop().Sugar())

	if _, err := service.Top(context.Background(), 10); err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("source calls = %d, want 1", source.calls)
	}
	if cache.sets != 1 || cache.lastTTL != time.Minute {
		t.Fatalf("cache not populated: sets=%d ttl=%v", cache.sets, cache.lastTTL)
	}

	var stored []quiz.LeaderboardEntry
	if err := json.Unmarshal(cache.data[cacheKey(10)], &stored); err != nil {
		t.Fatalf("stored payload unreadable: %v", err)
	}
	if len(stored) != 1 || stored[0].DisplayName != "bob" {
		t.Fatalf("unexpected stored entries: %+v", stored)
	}
}

func TestTopDiscardsUnreadableCacheEntry(t *testing.T) {
	source := &fakeSource{entries: []quiz.LeaderboardEntry{{DisplayName: "bob", TotalScore: 2}}}
	cache := &fakeCache{data: map[string][]byte{cacheKey(10): []byte("{not json")}}
	service := New(source, cache, time.Minute, zap.NewNop().Sugar())

	entries, err := service.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(entries) != 1 || entries[0].DisplayName != "bob" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if source.calls != 1 {
		t.Fatalf("source calls = %d, want 1", source.calls)
	}
	if cache.sets != 1 {
		t.Fatalf("unreadable entry not overwritten: sets=%d", cache.sets)
	}
}

func TestTopFallsBackOnCacheReadError(t *testing.T) {
	source := &fakeSource{entries: []quiz.LeaderboardEntry{{DisplayName: "carol", TotalScore: 1}}}
	cache := &fakeCache{getErr: errors.New("redis down")}
	service := New(source, cache, time.Minute, zap.NewNop().Sugar())

	entries, err := service.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(entries) != 1 || entries[0].DisplayName != "carol" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if source.calls != 1 {
		t.Fatalf("source calls = %d, want 1", source.calls)
	}
}

func TestTopToleratesCacheWriteError(t *testing.T) {
	source := &fakeSource{entries: []quiz.LeaderboardEntry{{DisplayName: "dave", TotalScore: 4}}}
	cache := &fakeCache{setErr: errors.New("redis down")}
	service := New(source, cache, time.Minute, zap.NewNop().Sugar())

	entries, err := service.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(entries) != 1 || entries[0].DisplayName != "dave" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
