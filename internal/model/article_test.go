package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	a := Article{ID: "x-1", Title: "Başlık", Slug: "baslik", Source: "Test"}
	a.Normalize()
	assert.NotEmpty(t, a.PublishedAt, "missing timestamp gets a default")

	assert.Equal(t, DefaultSummary, a.Summary)
	assert.Equal(t, DefaultSummary, a.Content, "content falls back to summary")
	assert.Equal(t, DefaultCategory, a.Category)
	assert.Equal(t, DefaultImage, a.Image)
	assert.Equal(t, DefaultAuthor, a.Author)
	assert.Equal(t, DefaultURL, a.URL)
}

func TestNormalizeKeepsProvidedValues(t *testing.T) {
	a := Article{
		Summary:  "özet",
		Content:  "içerik",
		Category: "Spor",
		Image:    "https://example.com/i.jpg",
		Author:   "Yazar",
		URL:      "https://example.com/a",
	}
	a.Normalize()

	assert.Equal(t, "özet", a.Summary)
	assert.Equal(t, "içerik", a.Content)
	assert.Equal(t, "Spor", a.Category)
	assert.Equal(t, "https://example.com/i.jpg", a.Image)
	assert.Equal(t, "Yazar", a.Author)
	assert.Equal(t, "https://example.com/a", a.URL)
}
