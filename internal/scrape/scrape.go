// Package scrape extracts article body text from Turkish news pages. It is
// best-effort: selectors cover the common layouts, anything else comes back
// empty. Results are cached much longer than news listings since article
// bodies do not change.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Content containers tried in order; the first selector yielding enough text
// wins.
var contentSelectors = []string{
	"div.news-detail-text",
	"div.article-body",
	"div.content-text",
	"article p",
	"div.detail-content p",
	"main p",
}

const minContentLen = 120

// ErrNoContent is returned when no selector produced a usable body.
var ErrNoContent = errors.New("no article content found")

// Extractor fetches a page and pulls out the article body.
type Extractor struct {
	client *http.Client
	cache  *contentCache
}

// NewExtractor creates an extractor whose results live for ttl.
func NewExtractor(ttl time.Duration) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  newContentCache(ttl),
	}
}

// Content returns the extracted article text for pageURL and whether it came
// from the cache.
func (e *Extractor) Content(ctx context.Context, pageURL string) (string, bool, error) {
	if _, err := url.ParseRequestURI(pageURL); err != nil {
		return "", false, fmt.Errorf("invalid url: %w", err)
	}
	if text, ok := e.cache.get(pageURL); ok {
		return text, true, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := e.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, fmt.Errorf("scrape: status %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", false, err
	}
	text := extract(doc)
	if text == "" {
		return "", false, ErrNoContent
	}

	e.cache.set(pageURL, text)
	slog.Info("scrape: extracted", "url", pageURL, "chars", len(text))
	return text, false, nil
}

// CacheSize reports how many extracted bodies are cached, for /health.
func (e *Extractor) CacheSize() int { return e.cache.size() }

func extract(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		var parts []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if text := strings.Join(parts, "\n\n"); len(text) >= minContentLen {
			return text
		}
	}
	return ""
}
