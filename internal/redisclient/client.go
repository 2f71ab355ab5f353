// Package redisclient builds the redis connection used by the shared cache
// backend.
package redisclient

import (
	"github.com/redis/go-redis/v9"

	"github.com/MuradEyvazli/vizyon-haber/internal/config"
)

// New creates a redis client from configuration.
func New(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
