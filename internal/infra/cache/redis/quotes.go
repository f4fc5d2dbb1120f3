package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"bookingengine/internal/app/dto"
)

// QuoteCache keeps computed quotes for a short TTL. Lookups fail open: any
// Redis error behaves as a miss so pricing never depends on the cache.
type QuoteCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *slog.Logger
}

func NewQuoteCache(addr string, ttl time.Duration, logger *slog.Logger) *QuoteCache {
	return &QuoteCache{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		TTL:    ttl,
		Logger: logger,
	}
}

func (c *QuoteCache) Get(ctx context.Context, roomID string, checkIn, checkOut time.Time) (dto.PriceQuote, bool) {
	if c == nil || c.Client == nil {
		return dto.PriceQuote{}, false
	}
	raw, err := c.Client.Get(ctx, c.key(roomID, checkIn, checkOut)).Bytes()
	if err != nil {
		if err != redis.Nil && c.Logger != nil {
			c.Logger.Warn("quote cache read failed", "error", err)
		}
		return dto.PriceQuote{}, false
	}
	var quote dto.PriceQuote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return dto.PriceQuote{}, false
	}
	return quote, true
}

func (c *QuoteCache) Set(ctx context.Context, roomID string, checkIn, checkOut time.Time, quote dto.PriceQuote) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(quote)
	if err != nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := c.Client.Set(ctx, c.key(roomID, checkIn, checkOut), raw, ttl).Err(); err != nil && c.Logger != nil {
		c.Logger.Warn("quote cache write failed", "error", err)
	}
}

// Invalidate drops every cached quote for a room after its base price or
// service status changes. An empty roomID drops all rooms, used when the
// season calendar changes.
func (c *QuoteCache) Invalidate(ctx context.Context, roomID string) {
	if c == nil || c.Client == nil {
		return
	}
	pattern := "quote:*"
	if roomID != "" {
		pattern = fmt.Sprintf("quote:%s:*", roomID)
	}
	iter := c.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		_ = c.Client.Del(ctx, iter.Val()).Err()
	}
}

func (c *QuoteCache) key(roomID string, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("quote:%s:%s:%s", roomID, checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
}
