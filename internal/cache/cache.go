package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmarchal/game-price-comparator/internal/models"
)

// QuoteCache is a best-effort Redis cache for marketplace quotes,
// keyed by normalized game title. Redis failures are logged and
// treated as cache misses, never as comparison failures.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "quote-cache"),
	}
}

func quoteKey(title string) string {
	return "quote:" + strings.ToLower(strings.Join(strings.Fields(title), " "))
}

func (c *QuoteCache) Get(ctx context.Context, title string) (*models.PriceQuote, bool) {
	data, err := c.client.Get(ctx, quoteKey(title)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache lookup failed", "title", title, "error", err)
		return nil, false
	}

	var quote models.PriceQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		c.logger.Warn("cache entry corrupt, ignoring", "title", title, "error", err)
		return nil, false
	}

	return &quote, true
}

func (c *QuoteCache) Set(ctx context.Context, title string, quote *models.PriceQuote) {
	data, err := json.Marshal(quote)
	if err != nil {
		c.logger.Warn("failed to marshal quote", "title", title, "error", err)
		return
	}

	if err := c.client.Set(ctx, quoteKey(title), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache store failed", "title", title, "error", err)
	}
}

// Ping verifies the Redis connection.
func (c *QuoteCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
