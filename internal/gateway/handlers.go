package gateway

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	maxPageSize     = 20
	defaultPageSize = 10
)

// clampPageSize parses pageSize, clamping into [1, 20]. Malformed input
// falls back to the default; the endpoint never rejects a request over
// parameters.
func clampPageSize(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultPageSize, false
	}
	if n > maxPageSize {
		return maxPageSize, true
	}
	return n, true
}

func clampPage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// handleNews serves the aggregated listing. Always 200.
func (s *Server) handleNews(c *gin.Context) {
	pageSize, _ := clampPageSize(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	page := clampPage(c.DefaultQuery("page", "1"))

	res := s.opts.Aggregator.Fetch(c.Request.Context(), pageSize, page)

	message := fmt.Sprintf("%s kullanıldı", res.Source)
	if res.Cached {
		message = "Cache'den döndürüldü"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"source":   res.Source,
		"cached":   res.Cached,
		"articles": res.Articles,
		"stats":    s.usageStrings(),
		"message":  message,
	})
}

// handleContent serves scraped article bodies. Best-effort: failures come
// back as an empty content with an explanatory message, still 200.
func (s *Server) handleContent(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"url":     "",
			"content": "",
			"cached":  false,
			"message": "url parametresi gerekli",
		})
		return
	}

	text, cached, err := s.opts.Extractor.Content(c.Request.Context(), pageURL)
	message := "İçerik çıkarıldı"
	if cached {
		message = "Cache'den döndürüldü"
	}
	if err != nil {
		message = "İçerik alınamadı: " + err.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     pageURL,
		"content": text,
		"cached":  cached,
		"message": message,
	})
}

// handleStats reports cache counters and per-provider quota usage.
func (s *Server) handleStats(c *gin.Context) {
	cs := s.opts.Store.Stats()
	keys := s.opts.Store.Keys(c.Request.Context())

	usage := s.opts.Quota.Usage()
	apiUsage := make(gin.H, len(usage))
	resetIn := make(gin.H, len(usage))
	for name, u := range usage {
		apiUsage[name] = fmt.Sprintf("%d/%d (%d%%)", u.Count, u.Limit, u.Percent)
		resetIn[name] = fmt.Sprintf("%d saat", int(math.Round(u.ResetIn.Hours())))
	}

	c.JSON(http.StatusOK, gin.H{
		"cache": gin.H{
			"keys":    len(keys),
			"hits":    cs.Hits,
			"misses":  cs.Misses,
			"hitRate": cs.HitRate(),
		},
		"apiUsage": apiUsage,
		"resetIn":  resetIn,
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"environment": s.opts.Environment,
		"apis":        s.opts.Providers,
		"cache": gin.H{
			"enabled": true,
			"backend": s.opts.Backend,
			"ttl":     s.opts.CacheTTL.String(),
			"keys":    len(s.opts.Store.Keys(c.Request.Context())),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRoot is the service directory.
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Vizyon Haber API - Hibrit Haber Sistemi",
		"mode":    string(s.opts.Aggregator.Mode()),
		"features": []string{
			"Çoklu API desteği (Currents + NewsData + NewsAPI + GNews + RSS)",
			"Akıllı cache",
			"Otomatik fallback",
			"Günlük limit takibi",
		},
		"endpoints": gin.H{
			"news":    "/api/news?pageSize=10&page=1",
			"content": "/api/news/content?url=...",
			"stats":   "/api/stats",
			"health":  "/health",
		},
	})
}

// usageStrings renders quota usage as "count/limit" per provider, matching
// the envelope the frontend expects.
func (s *Server) usageStrings() map[string]string {
	usage := s.opts.Quota.Usage()
	out := make(map[string]string, len(usage))
	for name, u := range usage {
		out[name] = fmt.Sprintf("%d/%d", u.Count, u.Limit)
	}
	return out
}
