package mem

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"netops/pkg/logger"
)

const statsKeyPrefix = "netops:stats:"

// RedisStatsCache shares dashboard stats between instances. Keys are kept
// for retain so an expired value can still be served as a fallback.
type RedisStatsCache struct {
	client *redis.Client
	retain time.Duration
}

func NewRedisStatsCache(client *redis.Client, retain time.Duration) *RedisStatsCache {
	if retain <= 0 {
		retain = 10 * time.Minute
	}
	return &RedisStatsCache{client: client, retain: retain}
}

func (r *RedisStatsCache) Get(ctx context.Context, key string) (StatsEntry, bool) {
	raw, err := r.client.Get(ctx, statsKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Stats cache read failed", "key", key, "error", err)
		}
		return StatsEntry{}, false
	}

	var entry StatsEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		logger.Warn("Stats cache entry is corrupt", "key", key, "error", err)
		return StatsEntry{}, false
	}
	return entry, true
}

func (r *RedisStatsCache) Set(ctx context.Context, key string, entry StatsEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, statsKeyPrefix+key, raw, r.retain).Err(); err != nil {
		logger.Warn("Stats cache write failed", "key", key, "error", err)
	}
}

func (r *RedisStatsCache) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, statsKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
