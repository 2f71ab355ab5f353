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

// Currents queries the Currents API (free tier: 600 requests/day).
type Currents struct {
	apiKey  string
	baseURL string
	quota   *quota.Tracker
	client  *http.Client
}

// NewCurrents creates the Currents adapter. baseURL defaults to the public
// endpoint; tests override it.
func NewCurrents(apiKey, baseURL string, q *quota.Tracker) *Currents {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.currentsapi.services"
	}
	return &Currents{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		quota:   q,
		client:  newHTTPClient(),
	}
}

func (c *Currents) Name() string { return "currents" }

type currentsResponse struct {
	Status string `json:"status"`
	News   []struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		URL         string   `json:"url"`
		Author      string   `json:"author"`
		Image       string   `json:"image"`
		Category    []string `json:"category"`
		Published   string   `json:"published"`
	} `json:"news"`
}

func (c *Currents) Fetch(ctx context.Context, pageSize, page int) ([]model.Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}
	if !c.quota.TryConsume(c.Name()) {
		return nil, ErrQuotaExceeded
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("country", "TR")
	params.Set("language", "tr")
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("page_number", strconv.Itoa(page))

	var body currentsResponse
	if err := getJSON(ctx, c.client, c.Name(), c.baseURL+"/v1/latest-news", params, &body); err != nil {
		return nil, err
	}
	if body.Status != "ok" || len(body.News) == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]model.Article, 0, len(body.News))
	for i, n := range body.News {
		a := model.Article{
			ID:          makeID(c.Name(), i),
			Title:       n.Title,
			Summary:     n.Description,
			Content:     n.Description,
			Category:    first(n.Category),
			Slug:        slug.Make(n.Title),
			Image:       n.Image,
			PublishedAt: n.Published,
			Source:      "Currents API",
			URL:         n.URL,
			Author:      n.Author,
		}
		a.Normalize()
		out = append(out, a)
	}
	slog.Info("currents: fetched", "count", len(out))
	return out, nil
}
