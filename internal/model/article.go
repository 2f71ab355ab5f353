package model

import "time"

// Defaults applied when an upstream omits a field. The frontend relies on
// every field being present, so adapters substitute these instead of leaving
// anything empty.
const (
	DefaultSummary  = "Haber detayları için tıklayın."
	DefaultCategory = "Gündem"
	DefaultImage    = "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=800"
	DefaultAuthor   = "Haber Kaynağı"
	DefaultURL      = "#"
)

// Article is the normalized news item shared by all providers and the demo
// fallback. IDs are unique within a response batch, not globally stable.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Author      string `json:"author"`
}

// Normalize fills any empty field with its default so the output shape is
// always complete. Content falls back to the summary.
func (a *Article) Normalize() {
	if a.Summary == "" {
		a.Summary = DefaultSummary
	}
	if a.Content == "" {
		a.Content = a.Summary
	}
	if a.Category == "" {
		a.Category = DefaultCategory
	}
	if a.Image == "" {
		a.Image = DefaultImage
	}
	if a.Author == "" {
		a.Author = DefaultAuthor
	}
	if a.URL == "" {
		a.URL = DefaultURL
	}
	if a.PublishedAt == "" {
		a.PublishedAt = time.Now().UTC().Format(time.RFC3339)
	}
}
