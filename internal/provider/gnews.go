package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
	"github.com/MuradEyvazli/vizyon-haber/internal/quota"
	"github.com/MuradEyvazli/vizyon-haber/internal/slug"
)

// gnewsMaxPageSize is the free-tier hard cap on results per request.
const gnewsMaxPageSize = 10

// GNews queries gnews.io top headlines (free tier: 100 requests/day).
type GNews struct {
	apiKey  string
	baseURL string
	quota   *quota.Tracker
	client  *http.Client
}

func NewGNews(apiKey, baseURL string, q *quota.Tracker) *GNews {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://gnews.io"
	}
	return &GNews{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		quota:   q,
		client:  newHTTPClient(),
	}
}

func (g *GNews) Name() string { return "gnews" }

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (g *GNews) Fetch(ctx context.Context, pageSize, page int) ([]model.Article, error) {
	if g.apiKey == "" {
		return nil, ErrMissingKey
	}
	if !g.quota.TryConsume(g.Name()) {
		return nil, ErrQuotaExceeded
	}

	if pageSize > gnewsMaxPageSize {
		pageSize = gnewsMaxPageSize
	}
	params := url.Values{}
	params.Set("apikey", g.apiKey)
	params.Set("country", "tr")
	params.Set("lang", "tr")
	params.Set("max", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))

	var body gnewsResponse
	if err := getJSON(ctx, g.client, g.Name(), g.baseURL+"/api/v4/top-headlines", params, &body); err != nil {
		return nil, err
	}
	if len(body.Articles) == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]model.Article, 0, len(body.Articles))
	for i, r := range body.Articles {
		source := r.Source.Name
		if source == "" {
			source = "GNews"
		}
		content := r.Content
		if content == "" {
			content = r.Description
		}
		a := model.Article{
			ID:          makeID(g.Name(), i),
			Title:       r.Title,
			Summary:     r.Description,
			Content:     content,
			Slug:        slug.Make(r.Title),
			Image:       r.Image,
			PublishedAt: r.PublishedAt,
			Source:      source,
			URL:         r.URL,
			Author:      source,
		}
		a.Normalize()
		out = append(out, a)
	}
	slog.Info("gnews: fetched", "count", len(out))
	return out, nil
}
