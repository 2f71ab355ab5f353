package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MuradEyvazli/vizyon-haber/internal/aggregate"
	"github.com/MuradEyvazli/vizyon-haber/internal/cache"
	"github.com/MuradEyvazli/vizyon-haber/internal/config"
	"github.com/MuradEyvazli/vizyon-haber/internal/gateway"
	"github.com/MuradEyvazli/vizyon-haber/internal/provider"
	"github.com/MuradEyvazli/vizyon-haber/internal/quota"
	"github.com/MuradEyvazli/vizyon-haber/internal/redisclient"
	"github.com/MuradEyvazli/vizyon-haber/internal/scrape"
	"github.com/MuradEyvazli/vizyon-haber/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the news aggregation gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		tracker := quota.NewTracker(cfg.DailyLimits())

		// Cache backend: redis when configured and reachable, otherwise
		// in-process memory.
		var store cache.Store
		var mem *cache.Memory
		backend := "memory"
		if cfg.Redis.Addr != "" {
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
			err := rdb.Ping(pingCtx).Err()
			cancelPing()
			if err != nil {
				slog.Warn("serve: redis unreachable, using in-memory cache", "addr", cfg.Redis.Addr, "error", err)
			} else {
				store = cache.NewRedis(rdb)
				backend = "redis"
			}
		}
		if store == nil {
			mem = cache.NewMemory()
			store = mem
		}

		adapters := buildAdapters(cfg, tracker)
		if len(adapters) == 0 {
			slog.Warn("serve: no providers configured, only demo content will be served")
		}

		agg := aggregate.New(adapters, store, aggregate.Config{
			Mode:           aggregate.Mode(cfg.Aggregate.Mode),
			CacheTTL:       cfg.Aggregate.CacheTTL,
			AdapterTimeout: cfg.Aggregate.AdapterTimeout,
			RaceTimeout:    cfg.Aggregate.RaceTimeout,
		})

		srv := gateway.New(gateway.Options{
			Aggregator:  agg,
			Quota:       tracker,
			Store:       store,
			Extractor:   scrape.NewExtractor(cfg.Scrape.CacheTTL),
			Environment: cfg.App.Environment,
			Providers:   providerFlags(cfg),
			CORSOrigins: cfg.Server.CORSOrigins,
			CacheTTL:    cfg.Aggregate.CacheTTL,
			Backend:     backend,
		})

		ws := []worker.Worker{
			&worker.QuotaSweeper{Tracker: tracker, Interval: time.Hour},
		}
		if mem != nil {
			ws = append(ws, &worker.CacheSweeper{Cache: mem, Interval: 2 * time.Minute})
		}
		if cfg.Aggregate.WarmKey {
			ws = append(ws, &worker.CacheWarmer{Aggregator: agg, Store: store, TTL: cfg.Aggregate.CacheTTL})
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("serve: received signal, shutting down", "signal", s.String())
			cancel()
		}()

		mgr := worker.NewManager(ws...)
		mgrDone := make(chan error, 1)
		go func() { mgrDone <- mgr.Start(ctx) }()

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: srv.Router(),
		}
		go func() {
			<-ctx.Done()
			shutCtx, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShut()
			httpSrv.Shutdown(shutCtx)
		}()

		slog.Info("serve: starting gateway",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
			"mode", cfg.Aggregate.Mode,
			"cache_backend", backend,
			"providers", providerFlags(cfg))

		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancel()
			<-mgrDone
			return err
		}
		cancel()
		return <-mgrDone
	},
}

// buildAdapters creates one adapter per configured provider. A provider with
// no API key is left out entirely.
func buildAdapters(cfg config.Config, tracker *quota.Tracker) []provider.Adapter {
	var adapters []provider.Adapter
	if cfg.Providers.Currents.APIKey != "" {
		adapters = append(adapters, provider.NewCurrents(cfg.Providers.Currents.APIKey, cfg.Providers.Currents.BaseURL, tracker))
	}
	if cfg.Providers.NewsData.APIKey != "" {
		adapters = append(adapters, provider.NewNewsData(cfg.Providers.NewsData.APIKey, cfg.Providers.NewsData.BaseURL, tracker))
	}
	if cfg.Providers.NewsAPI.APIKey != "" {
		adapters = append(adapters, provider.NewNewsAPI(cfg.Providers.NewsAPI.APIKey, cfg.Providers.NewsAPI.BaseURL, tracker))
	}
	if cfg.Providers.GNews.APIKey != "" {
		adapters = append(adapters, provider.NewGNews(cfg.Providers.GNews.APIKey, cfg.Providers.GNews.BaseURL, tracker))
	}
	if len(cfg.Providers.RSSFeeds) > 0 {
		adapters = append(adapters, provider.NewRSS(cfg.Providers.RSSFeeds))
	}
	return adapters
}

// providerFlags reports which providers are usable, for /health.
func providerFlags(cfg config.Config) map[string]bool {
	return map[string]bool{
		"currents": cfg.Providers.Currents.APIKey != "",
		"newsdata": cfg.Providers.NewsData.APIKey != "",
		"newsapi":  cfg.Providers.NewsAPI.APIKey != "",
		"gnews":    cfg.Providers.GNews.APIKey != "",
		"rss":      len(cfg.Providers.RSSFeeds) > 0,
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
