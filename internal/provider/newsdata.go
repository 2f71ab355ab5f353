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

// NewsData queries NewsData.io (free tier: 200 requests/day). The upstream
// paginates with a nextPage token rather than a page number, so only the
// first page is reachable; requests for page > 1 still return that page.
type NewsData struct {
	apiKey  string
	baseURL string
	quota   *quota.Tracker
	client  *http.Client
}

func NewNewsData(apiKey, baseURL string, q *quota.Tracker) *NewsData {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://newsdata.io"
	}
	return &NewsData{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		quota:   q,
		client:  newHTTPClient(),
	}
}

func (n *NewsData) Name() string { return "newsdata" }

type newsDataResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Content     string   `json:"content"`
		Category    []string `json:"category"`
		ImageURL    string   `json:"image_url"`
		PubDate     string   `json:"pubDate"`
		Link        string   `json:"link"`
		Creator     []string `json:"creator"`
		SourceID    string   `json:"source_id"`
	} `json:"results"`
}

func (n *NewsData) Fetch(ctx context.Context, pageSize, _ int) ([]model.Article, error) {
	if n.apiKey == "" {
		return nil, ErrMissingKey
	}
	if !n.quota.TryConsume(n.Name()) {
		return nil, ErrQuotaExceeded
	}

	params := url.Values{}
	params.Set("apikey", n.apiKey)
	params.Set("country", "tr")
	params.Set("language", "tr")
	params.Set("size", strconv.Itoa(pageSize))

	var body newsDataResponse
	if err := getJSON(ctx, n.client, n.Name(), n.baseURL+"/api/1/news", params, &body); err != nil {
		return nil, err
	}
	if body.Status != "success" || len(body.Results) == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]model.Article, 0, len(body.Results))
	for i, r := range body.Results {
		author := first(r.Creator)
		if author == "" {
			author = r.SourceID
		}
		content := r.Content
		if content == "" {
			content = r.Description
		}
		a := model.Article{
			ID:          makeID(n.Name(), i),
			Title:       r.Title,
			Summary:     r.Description,
			Content:     content,
			Category:    first(r.Category),
			Slug:        slug.Make(r.Title),
			Image:       r.ImageURL,
			PublishedAt: r.PubDate,
			Source:      "NewsData.io",
			URL:         r.Link,
			Author:      author,
		}
		a.Normalize()
		out = append(out, a)
	}
	slog.Info("newsdata: fetched", "count", len(out))
	return out, nil
}
