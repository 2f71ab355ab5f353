// Package aggregate coordinates the provider adapters: fan out to all of
// them and merge, or race them and take the first non-empty answer.
package aggregate

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/MuradEyvazli/vizyon-haber/internal/cache"
	"github.com/MuradEyvazli/vizyon-haber/internal/demo"
	"github.com/MuradEyvazli/vizyon-haber/internal/model"
	"github.com/MuradEyvazli/vizyon-haber/internal/provider"
)

// Mode selects the aggregation strategy.
type Mode string

const (
	// ModeMerge calls every adapter and combines all successes. Maximum
	// volume, latency bound by the slowest adapter.
	ModeMerge Mode = "merge"
	// ModeRace calls every adapter and returns the first non-empty result.
	// Minimum latency, fewer providers exercised per request.
	ModeRace Mode = "race"
)

// SourceMerge is the envelope source name for merged results.
const SourceMerge = "hybrid"

// Config controls strategy selection and timing.
type Config struct {
	Mode           Mode
	CacheTTL       time.Duration
	AdapterTimeout time.Duration // per-adapter deadline in race mode
	RaceTimeout    time.Duration // global deadline in race mode
}

func (c *Config) fillDefaults() {
	if c.Mode == "" {
		c.Mode = ModeMerge
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}
	if c.AdapterTimeout <= 0 {
		c.AdapterTimeout = 4 * time.Second
	}
	if c.RaceTimeout <= 0 {
		c.RaceTimeout = 6 * time.Second
	}
}

// Result is what a strategy hands to the gateway.
type Result struct {
	Articles    []model.Article
	Source      string
	Cached      bool
	PerProvider map[string]int
}

// Aggregator runs one of the two strategies over a fixed adapter set, with a
// cache in front.
type Aggregator struct {
	adapters []provider.Adapter
	store    cache.Store
	cfg      Config
}

func New(adapters []provider.Adapter, store cache.Store, cfg Config) *Aggregator {
	cfg.fillDefaults()
	return &Aggregator{adapters: adapters, store: store, cfg: cfg}
}

// Mode reports the configured strategy.
func (a *Aggregator) Mode() Mode { return a.cfg.Mode }

// Fetch answers a news listing request: cache first, then the configured
// strategy, then the demo fallback. Non-empty live results are written
// through to the cache; demo content never is.
func (a *Aggregator) Fetch(ctx context.Context, pageSize, page int) Result {
	key := cache.Key(pageSize, page)
	if articles, ok := a.store.Get(ctx, key); ok {
		slog.Info("aggregate: cache hit", "key", key)
		return Result{Articles: articles, Source: "cache", Cached: true}
	}

	var res Result
	switch a.cfg.Mode {
	case ModeRace:
		res = a.race(ctx, pageSize, page)
	default:
		res = a.merge(ctx, pageSize, page)
	}

	if res.Source != demo.Source && len(res.Articles) > 0 {
		a.store.Set(ctx, key, res.Articles, a.cfg.CacheTTL)
	}
	return res
}

// call invokes one adapter, converting panics and errors into an empty list
// so a misbehaving provider can never take the request down.
func call(ctx context.Context, ad provider.Adapter, pageSize, page int) (articles []model.Article) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("aggregate: adapter panic", "provider", ad.Name(), "panic", r)
			articles = nil
		}
	}()
	articles, err := ad.Fetch(ctx, pageSize, page)
	if err != nil {
		slog.Error("aggregate: adapter failed", "provider", ad.Name(), "error", err)
		return nil
	}
	return articles
}

// merge fans out to every adapter, waits for all of them, and interleaves
// the combined results with a Fisher-Yates shuffle so no provider dominates
// the top of the page.
func (a *Aggregator) merge(ctx context.Context, pageSize, page int) Result {
	results := make([][]model.Article, len(a.adapters))
	var wg sync.WaitGroup
	for i, ad := range a.adapters {
		wg.Add(1)
		go func(i int, ad provider.Adapter) {
			defer wg.Done()
			results[i] = call(ctx, ad, pageSize, page)
		}(i, ad)
	}
	wg.Wait()

	perProvider := make(map[string]int, len(a.adapters))
	var combined []model.Article
	for i, ad := range a.adapters {
		perProvider[ad.Name()] = len(results[i])
		combined = append(combined, results[i]...)
	}
	if len(combined) == 0 {
		slog.Warn("aggregate: all providers empty, serving demo content")
		return Result{Articles: demo.Articles(pageSize), Source: demo.Source, PerProvider: perProvider}
	}

	shuffled := shuffle(combined)
	slog.Info("aggregate: merged", "total", len(shuffled), "providers", perProvider)
	return Result{Articles: shuffled, Source: SourceMerge, PerProvider: perProvider}
}

// race starts every adapter under its own timeout and returns the first
// non-empty result. Losing adapters keep running until their per-adapter
// deadline; their sends land in a buffered channel, so nothing leaks. A
// global deadline bounds the whole race.
func (a *Aggregator) race(ctx context.Context, pageSize, page int) Result {
	type attempt struct {
		name     string
		articles []model.Article
	}
	results := make(chan attempt, len(a.adapters))

	for _, ad := range a.adapters {
		go func(ad provider.Adapter) {
			adCtx, cancel := context.WithTimeout(ctx, a.cfg.AdapterTimeout)
			defer cancel()
			results <- attempt{name: ad.Name(), articles: call(adCtx, ad, pageSize, page)}
		}(ad)
	}

	deadline := time.NewTimer(a.cfg.RaceTimeout)
	defer deadline.Stop()

	for pending := len(a.adapters); pending > 0; pending-- {
		select {
		case att := <-results:
			if len(att.articles) > 0 {
				slog.Info("aggregate: race won", "provider", att.name, "count", len(att.articles))
				return Result{
					Articles:    att.articles,
					Source:      att.name,
					PerProvider: map[string]int{att.name: len(att.articles)},
				}
			}
		case <-deadline.C:
			slog.Warn("aggregate: race deadline expired, serving demo content")
			return Result{Articles: demo.Articles(pageSize), Source: demo.Source}
		case <-ctx.Done():
			return Result{Articles: demo.Articles(pageSize), Source: demo.Source}
		}
	}

	slog.Warn("aggregate: no provider won the race, serving demo content")
	return Result{Articles: demo.Articles(pageSize), Source: demo.Source}
}

// shuffle returns a Fisher-Yates shuffled copy.
func shuffle(in []model.Article) []model.Article {
	out := make([]model.Article, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
