package cache

import (
	"fmt"

	"github.com/shipkaro/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewQuoteCache creates a quote cache for the configured backend.
// The redis backend falls back to in-memory with a warning when Redis is
// unreachable, so a cache outage never blocks pricing.
func NewQuoteCache(cfg *config.Config, logger *zap.Logger) (QuoteCache, error) {
	switch cfg.Quote.Backend {
	case "memory":
		logger.Info("using in-memory quote cache")
		return NewInMemoryQuoteCache(), nil

	case "redis":
		store, err := NewRedisQuoteCache(RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory quote cache. "+
				"Quotes will not be shared across instances.",
				zap.Error(err),
			)
			return NewInMemoryQuoteCache(), nil
		}
		logger.Info("using Redis quote cache", zap.String("addr", cfg.Redis.Addr()))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown quote cache backend %q", cfg.Quote.Backend)
	}
}
