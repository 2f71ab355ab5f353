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

// Turkish outlets the NewsAPI adapter restricts itself to. NewsAPI's
// "everything" endpoint has no country filter, so filtering by domain is the
// only way to keep results Turkish.
const newsAPIDomains = "sabah.com.tr,hurriyet.com.tr,milliyet.com.tr,sozcu.com.tr,haberturk.com,ntv.com.tr,cnnturk.com,trthaber.com"

// NewsAPI queries newsapi.org (free tier: 100 requests/day). Free-tier
// responses truncate content with a literal "[+N chars]" marker, which is
// passed through untouched.
type NewsAPI struct {
	apiKey  string
	baseURL string
	quota   *quota.Tracker
	client  *http.Client
}

func NewNewsAPI(apiKey, baseURL string, q *quota.Tracker) *NewsAPI {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://newsapi.org"
	}
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		quota:   q,
		client:  newHTTPClient(),
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

func (n *NewsAPI) Fetch(ctx context.Context, pageSize, page int) ([]model.Article, error) {
	if n.apiKey == "" {
		return nil, ErrMissingKey
	}
	if !n.quota.TryConsume(n.Name()) {
		return nil, ErrQuotaExceeded
	}

	params := url.Values{}
	params.Set("apiKey", n.apiKey)
	params.Set("domains", newsAPIDomains)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))

	var body newsAPIResponse
	if err := getJSON(ctx, n.client, n.Name(), n.baseURL+"/v2/everything", params, &body); err != nil {
		return nil, err
	}
	if body.Status != "ok" || len(body.Articles) == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]model.Article, 0, len(body.Articles))
	for i, r := range body.Articles {
		author := r.Author
		if author == "" {
			author = r.Source.Name
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
			Slug:        slug.Make(r.Title),
			Image:       r.URLToImage,
			PublishedAt: r.PublishedAt,
			Source:      "NewsAPI",
			URL:         r.URL,
			Author:      author,
		}
		a.Normalize()
		out = append(out, a)
	}
	slog.Info("newsapi: fetched", "count", len(out))
	return out, nil
}
