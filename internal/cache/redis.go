package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
)

const redisPrefix = "news:cache:"

// Redis is a Store backed by a shared redis instance, for deployments running
// more than one gateway process. Entries are JSON article lists with native
// expiry. Hit/miss counters stay process-local.
type Redis struct {
	rdb    *redis.Client
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedis wraps an existing redis client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, key string) ([]model.Article, bool) {
	b, err := r.rdb.Get(ctx, redisPrefix+key).Bytes()
	if err == redis.Nil {
		r.misses.Add(1)
		return nil, false
	}
	if err != nil {
		slog.Error("cache: redis get failed", "key", key, "error", err)
		r.misses.Add(1)
		return nil, false
	}
	var articles []model.Article
	if err := json.Unmarshal(b, &articles); err != nil {
		slog.Error("cache: corrupt redis entry", "key", key, "error", err)
		r.rdb.Del(ctx, redisPrefix+key)
		r.misses.Add(1)
		return nil, false
	}
	r.hits.Add(1)
	return articles, true
}

func (r *Redis) Set(ctx context.Context, key string, articles []model.Article, ttl time.Duration) {
	b, err := json.Marshal(articles)
	if err != nil {
		slog.Error("cache: marshal failed", "key", key, "error", err)
		return
	}
	if err := r.rdb.Set(ctx, redisPrefix+key, b, ttl).Err(); err != nil {
		slog.Error("cache: redis set failed", "key", key, "error", err)
	}
}

func (r *Redis) Has(ctx context.Context, key string) bool {
	n, err := r.rdb.Exists(ctx, redisPrefix+key).Result()
	return err == nil && n > 0
}

func (r *Redis) Delete(ctx context.Context, key string) {
	r.rdb.Del(ctx, redisPrefix+key)
}

func (r *Redis) Keys(ctx context.Context) []string {
	raw, err := r.rdb.Keys(ctx, redisPrefix+"*").Result()
	if err != nil {
		slog.Error("cache: redis keys failed", "error", err)
		return nil
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, redisPrefix))
	}
	return keys
}

func (r *Redis) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}
