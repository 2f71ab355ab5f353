package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MuradEyvazli/vizyon-haber/internal/aggregate"
	"github.com/MuradEyvazli/vizyon-haber/internal/cache"
	"github.com/MuradEyvazli/vizyon-haber/internal/quota"
)

var (
	fetchPageSize int
	fetchPage     int
	fetchMode     string
)

// fetchCmd runs one aggregation cycle without a server, for checking keys,
// quotas and provider responses from the command line.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run a single aggregation and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if fetchMode != "" {
			cfg.Aggregate.Mode = fetchMode
		}

		tracker := quota.NewTracker(cfg.DailyLimits())
		agg := aggregate.New(buildAdapters(cfg, tracker), cache.NewMemory(), aggregate.Config{
			Mode:           aggregate.Mode(cfg.Aggregate.Mode),
			CacheTTL:       cfg.Aggregate.CacheTTL,
			AdapterTimeout: cfg.Aggregate.AdapterTimeout,
			RaceTimeout:    cfg.Aggregate.RaceTimeout,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res := agg.Fetch(ctx, fetchPageSize, fetchPage)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"source":      res.Source,
			"count":       len(res.Articles),
			"perProvider": res.PerProvider,
			"articles":    res.Articles,
		})
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchPageSize, "page-size", 10, "articles per provider")
	fetchCmd.Flags().IntVar(&fetchPage, "page", 1, "page number")
	fetchCmd.Flags().StringVar(&fetchMode, "mode", "", "override aggregation mode (merge or race)")
	rootCmd.AddCommand(fetchCmd)
}
