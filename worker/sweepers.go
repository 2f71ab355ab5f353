package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/MuradEyvazli/vizyon-haber/internal/aggregate"
	"github.com/MuradEyvazli/vizyon-haber/internal/cache"
	"github.com/MuradEyvazli/vizyon-haber/internal/quota"
)

// QuotaSweeper resets expired provider windows on a fixed interval, so
// counters recover even when no traffic triggers the lazy reset.
type QuotaSweeper struct {
	Tracker  *quota.Tracker
	Interval time.Duration
}

func (w *QuotaSweeper) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.Tracker.SweepExpired()
		}
	}
}

// CacheSweeper evicts expired entries from the in-memory cache to bound
// memory. Not used with the redis backend, which expires natively.
type CacheSweeper struct {
	Cache    *cache.Memory
	Interval time.Duration
}

func (w *CacheSweeper) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 2 * time.Minute
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.Cache.Sweep()
		}
	}
}

// CacheWarmer rebuilds the default news listing shortly before its TTL
// expires, so the hottest request rarely pays provider latency.
type CacheWarmer struct {
	Aggregator *aggregate.Aggregator
	Store      cache.Store
	TTL        time.Duration
	PageSize   int
}

func (w *CacheWarmer) Start(ctx context.Context) error {
	if w.PageSize <= 0 {
		w.PageSize = 10
	}
	interval := w.TTL - w.TTL/10
	if interval <= 0 {
		interval = 54 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			key := cache.Key(w.PageSize, 1)
			w.Store.Delete(ctx, key)
			res := w.Aggregator.Fetch(ctx, w.PageSize, 1)
			slog.Info("cache-warmer: refreshed", "key", key, "source", res.Source, "count", len(res.Articles))
		}
	}
}
