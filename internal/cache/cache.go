// Package cache stores aggregated article lists keyed by request shape.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
)

// Stats counts lookups since process start.
type Stats struct {
	Hits   int64
	Misses int64
}

// HitRate returns hits / (hits + misses), or 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Store is a TTL cache for article lists. An expired entry must be treated
// as a miss even if a sweep has not removed it yet.
type Store interface {
	Get(ctx context.Context, key string) ([]model.Article, bool)
	Set(ctx context.Context, key string, articles []model.Article, ttl time.Duration)
	Has(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string)
	Keys(ctx context.Context) []string
	Stats() Stats
}

// Key builds the cache key for a news listing request.
func Key(pageSize, page int) string {
	return fmt.Sprintf("news-%d-%d", pageSize, page)
}
