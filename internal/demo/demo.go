// Package demo serves the hand-authored fallback articles returned when no
// provider has anything to give. It never fails.
package demo

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
)

// Source is the value reported in the response envelope for fallback content.
const Source = "demo"

//go:embed articles.yaml
var articlesYAML []byte

var articles []model.Article

func init() {
	if err := yaml.Unmarshal(articlesYAML, &articles); err != nil {
		panic(fmt.Sprintf("demo: embedded articles are invalid: %v", err))
	}
	for i := range articles {
		articles[i].Normalize()
	}
}

// Articles returns up to count demo articles. Timestamps are set relative to
// now, one hour apart, so the list always looks fresh.
func Articles(count int) []model.Article {
	if count <= 0 {
		return []model.Article{}
	}
	if count > len(articles) {
		count = len(articles)
	}
	now := time.Now()
	out := make([]model.Article, count)
	for i := 0; i < count; i++ {
		out[i] = articles[i]
		out[i].PublishedAt = now.Add(-time.Duration(i) * time.Hour).UTC().Format(time.RFC3339)
	}
	return out
}
