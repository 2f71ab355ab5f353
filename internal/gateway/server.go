// Package gateway exposes the aggregation service over HTTP. One deliberate
// quirk inherited from the frontend contract: every endpoint answers 200
// with a success envelope, and failures surface in the message field rather
// than as HTTP error codes.
package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MuradEyvazli/vizyon-haber/internal/aggregate"
	"github.com/MuradEyvazli/vizyon-haber/internal/cache"
	"github.com/MuradEyvazli/vizyon-haber/internal/demo"
	"github.com/MuradEyvazli/vizyon-haber/internal/quota"
	"github.com/MuradEyvazli/vizyon-haber/internal/scrape"
)

// Options wires the server's collaborators and deployment facts.
type Options struct {
	Aggregator  *aggregate.Aggregator
	Quota       *quota.Tracker
	Store       cache.Store
	Extractor   *scrape.Extractor
	Environment string
	Providers   map[string]bool // provider name -> key configured
	CORSOrigins []string
	CacheTTL    time.Duration
	Backend     string // "memory" or "redis"
}

// Server holds the gateway state. All of it is injected; nothing is global.
type Server struct {
	opts Options
}

func New(opts Options) *Server {
	return &Server{opts: opts}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	if s.opts.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(s.requestLog(), s.cors(), s.recovery())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/api/news", s.handleNews)
	r.GET("/api/news/content", s.handleContent)
	r.GET("/api/stats", s.handleStats)
	return r
}

// requestLog tags each request with an ID and logs it on completion.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		start := time.Now()
		c.Next()
		slog.Info("gateway: request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// cors echoes allowed origins. The allowlist comes from configuration; an
// absent Origin header (curl, server-to-server) passes through untouched.
func (s *Server) cors() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(s.opts.CORSOrigins))
	for _, o := range s.opts.CORSOrigins {
		allowed[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type, X-News-API-Key")
			}
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}

// recovery converts panics into the standard demo envelope instead of a 500,
// per the frontend contract.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("gateway: panic recovered", "panic", r, "path", c.Request.URL.Path)
				pageSize, _ := clampPageSize(c.Query("pageSize"))
				c.AbortWithStatusJSON(http.StatusOK, gin.H{
					"success":  true,
					"source":   demo.Source,
					"cached":   false,
					"articles": demo.Articles(pageSize),
					"message":  "API hatası, demo veriler kullanıldı",
				})
			}
		}()
		c.Next()
	}
}
