package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
	"github.com/MuradEyvazli/vizyon-haber/internal/quota"
)

func testTracker() *quota.Tracker {
	return quota.NewTracker(map[string]int{
		"currents": 600,
		"newsdata": 200,
		"newsapi":  100,
		"gnews":    100,
	})
}

func assertComplete(t *testing.T, a model.Article) {
	t.Helper()
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, a.Title)
	assert.NotEmpty(t, a.Summary)
	assert.NotEmpty(t, a.Content)
	assert.NotEmpty(t, a.Category)
	assert.NotEmpty(t, a.Slug)
	assert.NotEmpty(t, a.Image)
	assert.NotEmpty(t, a.PublishedAt)
	assert.NotEmpty(t, a.Source)
	assert.NotEmpty(t, a.URL)
	assert.NotEmpty(t, a.Author)
}

func TestCurrentsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/latest-news", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("apiKey"))
		assert.Equal(t, "TR", q.Get("country"))
		assert.Equal(t, "tr", q.Get("language"))
		assert.Equal(t, "10", q.Get("page_size"))
		assert.Equal(t, "2", q.Get("page_number"))
		w.Write([]byte(`{
			"status": "ok",
			"news": [
				{"title": "İlk Haber Başlığı", "description": "açıklama", "url": "https://example.com/1",
				 "author": "Yazar", "image": "https://example.com/img.jpg",
				 "category": ["ekonomi", "finans"], "published": "2025-01-15 10:00:00 +0000"},
				{"title": "İkinci Haber", "description": "", "url": "", "author": "",
				 "image": "", "category": [], "published": "2025-01-15 11:00:00 +0000"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewCurrents("secret", srv.URL, testTracker())
	got, err := c.Fetch(context.Background(), 10, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "ilk-haber-basligi", got[0].Slug)
	assert.Equal(t, "ekonomi", got[0].Category)
	assert.Equal(t, "Currents API", got[0].Source)

	// second article omitted everything optional; defaults must fill in
	assertComplete(t, got[1])
	assert.Equal(t, model.DefaultSummary, got[1].Summary)
	assert.Equal(t, model.DefaultCategory, got[1].Category)
	assert.Equal(t, model.DefaultImage, got[1].Image)
	assert.Equal(t, model.DefaultAuthor, got[1].Author)
	assert.Equal(t, model.DefaultURL, got[1].URL)
}

func TestCurrentsMissingKey(t *testing.T) {
	c := NewCurrents("", "http://invalid.test", testTracker())
	_, err := c.Fetch(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestCurrentsQuotaDenied(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status": "ok", "news": [{"title": "t"}]}`))
	}))
	defer srv.Close()

	tr := quota.NewTracker(map[string]int{"currents": 1})
	c := NewCurrents("secret", srv.URL, tr)

	_, err := c.Fetch(context.Background(), 10, 1)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 1, calls, "quota denial must not reach upstream")
}

func TestCurrentsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewCurrents("secret", srv.URL, testTracker())
	_, err := c.Fetch(context.Background(), 10, 1)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
}

func TestCurrentsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "news": []}`))
	}))
	defer srv.Close()

	c := NewCurrents("secret", srv.URL, testTracker())
	_, err := c.Fetch(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestNewsDataFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/1/news", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("apikey"))
		assert.Equal(t, "tr", q.Get("country"))
		assert.Equal(t, "5", q.Get("size"))
		w.Write([]byte(`{
			"status": "success",
			"results": [
				{"title": "Başlık", "description": "desc", "content": "uzun içerik",
				 "category": ["spor"], "image_url": "https://example.com/i.jpg",
				 "pubDate": "2025-01-15 10:00:00", "link": "https://example.com/a",
				 "creator": null, "source_id": "ntv"}
			]
		}`))
	}))
	defer srv.Close()

	n := NewNewsData("secret", srv.URL, testTracker())
	got, err := n.Fetch(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "uzun içerik", got[0].Content)
	assert.Equal(t, "ntv", got[0].Author, "author falls back to source_id when creator is null")
	assert.Equal(t, "NewsData.io", got[0].Source)
	assertComplete(t, got[0])
}

func TestNewsAPIFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		q := r.URL.Query()
		assert.Contains(t, q.Get("domains"), "hurriyet.com.tr")
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"source": {"name": "Hürriyet"}, "author": "",
				 "title": "Gündem Haberi", "description": "kısa özet",
				 "url": "https://example.com/h", "urlToImage": "https://example.com/h.jpg",
				 "publishedAt": "2025-01-15T10:00:00Z",
				 "content": "Haber metni... [+1234 chars]"}
			]
		}`))
	}))
	defer srv.Close()

	n := NewNewsAPI("secret", srv.URL, testTracker())
	got, err := n.Fetch(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// truncation markers from the free tier pass through verbatim
	assert.Equal(t, "Haber metni... [+1234 chars]", got[0].Content)
	assert.Equal(t, "Hürriyet", got[0].Author, "author falls back to source name")
	assert.Equal(t, model.DefaultCategory, got[0].Category)
	assertComplete(t, got[0])
}

func TestGNewsClampsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/top-headlines", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("max"), "free tier caps max at 10")
		w.Write([]byte(`{
			"articles": [
				{"title": "Son Dakika", "description": "özet", "content": "içerik",
				 "url": "https://example.com/g", "image": "https://example.com/g.jpg",
				 "publishedAt": "2025-01-15T10:00:00Z", "source": {"name": "NTV"}}
			]
		}`))
	}))
	defer srv.Close()

	g := NewGNews("secret", srv.URL, testTracker())
	got, err := g.Fetch(context.Background(), 20, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NTV", got[0].Source)
	assertComplete(t, got[0])
}

func TestRSSMissingFeeds(t *testing.T) {
	r := NewRSS(nil)
	_, err := r.Fetch(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestRSSFetchAndPaginate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel>
  <title>Örnek Kaynak</title>
  <item><title>Birinci</title><link>https://example.com/1</link>
    <description>ilk</description><pubDate>Wed, 15 Jan 2025 12:00:00 GMT</pubDate></item>
  <item><title>İkinci</title><link>https://example.com/2</link>
    <description>iki</description><pubDate>Wed, 15 Jan 2025 10:00:00 GMT</pubDate></item>
  <item><title>Üçüncü</title><link>https://example.com/3</link>
    <description>üç</description><pubDate>Wed, 15 Jan 2025 08:00:00 GMT</pubDate></item>
</channel></rss>`))
	}))
	defer srv.Close()

	r := NewRSS([]string{srv.URL})
	got, err := r.Fetch(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Birinci", got[0].Title, "newest first")
	assert.Equal(t, "Örnek Kaynak", got[0].Source)
	for _, a := range got {
		assertComplete(t, a)
	}

	second, err := r.Fetch(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Üçüncü", second[0].Title)

	_, err = r.Fetch(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrEmptyResult)
}
