package aggregate

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuradEyvazli/vizyon-haber/internal/cache"
	"github.com/MuradEyvazli/vizyon-haber/internal/model"
	"github.com/MuradEyvazli/vizyon-haber/internal/provider"
)

// fakeAdapter scripts one adapter's behavior for a test.
type fakeAdapter struct {
	name     string
	articles []model.Article
	err      error
	delay    time.Duration
	panics   bool
	calls    int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context, pageSize, page int) ([]model.Article, error) {
	f.calls++
	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func fakeArticles(prefix string, n int) []model.Article {
	out := make([]model.Article, n)
	for i := range out {
		out[i] = model.Article{
			ID: prefix + "-" + string(rune('a'+i)), Title: "başlık", Summary: "özet",
			Content: "içerik", Category: "Gündem", Slug: "baslik",
			Image: "https://example.com/i.jpg", PublishedAt: "2025-01-15T10:00:00Z",
			Source: prefix, URL: "https://example.com", Author: "yazar",
		}
	}
	return out
}

func ids(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	sort.Strings(out)
	return out
}

func TestMergeCombinesAllSuccesses(t *testing.T) {
	// two providers return 4 and 3 articles, one returns nothing
	store := cache.NewMemory()
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "currents", articles: fakeArticles("currents", 4)},
		&fakeAdapter{name: "newsdata", articles: fakeArticles("newsdata", 3)},
		&fakeAdapter{name: "newsapi", err: provider.ErrEmptyResult},
	}, store, Config{Mode: ModeMerge})

	res := agg.Fetch(context.Background(), 10, 1)

	assert.True(t, store.Has(context.Background(), cache.Key(10, 1)), "merged result must be cached")

	assert.Len(t, res.Articles, 7)
	assert.Equal(t, SourceMerge, res.Source)
	assert.False(t, res.Cached)
	assert.Equal(t, map[string]int{"currents": 4, "newsdata": 3, "newsapi": 0}, res.PerProvider)
	for _, a := range res.Articles {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Slug)
	}
}

func TestMergeSurvivesPanicAndTimeout(t *testing.T) {
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "a", panics: true},
		&fakeAdapter{name: "b", delay: 50 * time.Millisecond, err: errors.New("timeout")},
		&fakeAdapter{name: "c", articles: fakeArticles("c", 5)},
	}, cache.NewMemory(), Config{Mode: ModeMerge})

	res := agg.Fetch(context.Background(), 10, 1)

	require.Len(t, res.Articles, 5)
	assert.Equal(t, SourceMerge, res.Source)
	assert.Equal(t, ids(fakeArticles("c", 5)), ids(res.Articles))
}

func TestMergeAllFailServesDemo(t *testing.T) {
	store := cache.NewMemory()
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "a", err: provider.ErrMissingKey},
		&fakeAdapter{name: "b", err: provider.ErrQuotaExceeded},
	}, store, Config{Mode: ModeMerge})

	res := agg.Fetch(context.Background(), 10, 1)

	assert.Equal(t, "demo", res.Source)
	assert.NotEmpty(t, res.Articles)
	assert.False(t, store.Has(context.Background(), cache.Key(10, 1)), "demo content must not be cached")
}

func TestFetchPrefersCache(t *testing.T) {
	live := &fakeAdapter{name: "currents", articles: fakeArticles("currents", 3)}
	store := cache.NewMemory()
	agg := New([]provider.Adapter{live}, store, Config{Mode: ModeMerge, CacheTTL: time.Hour})

	first := agg.Fetch(context.Background(), 10, 1)
	require.False(t, first.Cached)
	require.Equal(t, 1, live.calls)

	second := agg.Fetch(context.Background(), 10, 1)
	assert.True(t, second.Cached)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, ids(first.Articles), ids(second.Articles))
	assert.Equal(t, 1, live.calls, "a cache hit must trigger zero upstream calls")
}

func TestCacheKeyIsPerRequestShape(t *testing.T) {
	live := &fakeAdapter{name: "currents", articles: fakeArticles("currents", 2)}
	agg := New([]provider.Adapter{live}, cache.NewMemory(), Config{Mode: ModeMerge})

	agg.Fetch(context.Background(), 10, 1)
	agg.Fetch(context.Background(), 10, 2)
	assert.Equal(t, 2, live.calls, "different page must miss the cache")
}

func TestRaceReturnsFirstNonEmpty(t *testing.T) {
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "slow", articles: fakeArticles("slow", 5), delay: 300 * time.Millisecond},
		&fakeAdapter{name: "fast", articles: fakeArticles("fast", 2), delay: 10 * time.Millisecond},
	}, cache.NewMemory(), Config{Mode: ModeRace})

	res := agg.Fetch(context.Background(), 10, 1)

	assert.Equal(t, "fast", res.Source)
	assert.Len(t, res.Articles, 2)
}

func TestRaceSkipsEmptyWinners(t *testing.T) {
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "empty", err: provider.ErrEmptyResult},
		&fakeAdapter{name: "good", articles: fakeArticles("good", 3), delay: 20 * time.Millisecond},
	}, cache.NewMemory(), Config{Mode: ModeRace})

	res := agg.Fetch(context.Background(), 10, 1)

	assert.Equal(t, "good", res.Source)
	assert.Len(t, res.Articles, 3)
}

func TestRaceDeadlineServesDemo(t *testing.T) {
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "stuck", articles: fakeArticles("stuck", 5), delay: time.Minute},
	}, cache.NewMemory(), Config{
		Mode:           ModeRace,
		AdapterTimeout: 50 * time.Millisecond,
		RaceTimeout:    100 * time.Millisecond,
	})

	start := time.Now()
	res := agg.Fetch(context.Background(), 10, 1)

	assert.Equal(t, "demo", res.Source)
	assert.NotEmpty(t, res.Articles)
	assert.Less(t, time.Since(start), 5*time.Second, "global deadline must bound the race")
}

func TestRaceWinnerIsCached(t *testing.T) {
	store := cache.NewMemory()
	agg := New([]provider.Adapter{
		&fakeAdapter{name: "fast", articles: fakeArticles("fast", 2)},
	}, store, Config{Mode: ModeRace, CacheTTL: time.Hour})

	agg.Fetch(context.Background(), 10, 1)
	assert.True(t, store.Has(context.Background(), cache.Key(10, 1)))
}

func TestShuffleKeepsAllElements(t *testing.T) {
	in := fakeArticles("x", 20)
	out := shuffle(in)
	assert.Equal(t, ids(in), ids(out))
	assert.Equal(t, in, fakeArticles("x", 20), "input must not be mutated")
}
