package provider

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
	"github.com/MuradEyvazli/vizyon-haber/internal/slug"
)

// RSS aggregates configured feed URLs. It needs no API key and no quota, so
// it keeps the portal alive when every keyed provider is exhausted.
type RSS struct {
	feeds  []string
	parser *gofeed.Parser
}

func NewRSS(feeds []string) *RSS {
	return &RSS{feeds: feeds, parser: gofeed.NewParser()}
}

func (r *RSS) Name() string { return "rss" }

func (r *RSS) Fetch(ctx context.Context, pageSize, page int) ([]model.Article, error) {
	if len(r.feeds) == 0 {
		return nil, ErrMissingKey
	}

	var items []model.Article
	idx := 0
	for _, feedURL := range r.feeds {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			slog.Error("rss: feed parse failed", "feed", feedURL, "error", err)
			continue
		}
		for _, it := range feed.Items {
			items = append(items, r.toArticle(feed, it, idx))
			idx++
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyResult
	}

	// newest first, then slice the requested page
	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt > items[j].PublishedAt
	})
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil, ErrEmptyResult
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	out := items[start:end]
	slog.Info("rss: fetched", "feeds", len(r.feeds), "count", len(out))
	return out, nil
}

func (r *RSS) toArticle(feed *gofeed.Feed, it *gofeed.Item, index int) model.Article {
	published := it.Published
	if it.PublishedParsed != nil {
		published = it.PublishedParsed.UTC().Format(time.RFC3339)
	}
	image := ""
	if it.Image != nil {
		image = it.Image.URL
	} else {
		for _, enc := range it.Enclosures {
			if enc.URL != "" {
				image = enc.URL
				break
			}
		}
	}
	author := ""
	if len(it.Authors) > 0 {
		author = it.Authors[0].Name
	}
	a := model.Article{
		ID:          makeID(r.Name(), index),
		Title:       it.Title,
		Summary:     it.Description,
		Content:     it.Content,
		Category:    first(it.Categories),
		Slug:        slug.Make(it.Title),
		Image:       image,
		PublishedAt: published,
		Source:      feed.Title,
		URL:         it.Link,
		Author:      author,
	}
	if a.Source == "" {
		a.Source = "RSS"
	}
	a.Normalize()
	return a
}
