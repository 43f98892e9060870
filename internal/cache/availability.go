package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const availableDatesKey = "cache:available_dates"

// AvailabilityCache keeps the computed rolling window of open booking dates
// in redis for a short TTL. All methods are safe on a nil receiver, so the
// cache can simply be left unconfigured.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) *AvailabilityCache {
	if addr == "" {
		return nil
	}
	return &AvailabilityCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl:    ttl,
	}
}

func (c *AvailabilityCache) GetDates(ctx context.Context) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, availableDatesKey).Bytes()
	if err != nil {
		return nil, false
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, false
	}
	return dates, true
}

func (c *AvailabilityCache) SetDates(ctx context.Context, dates []string) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(dates)
	if err != nil {
		return
	}
	c.client.Set(ctx, availableDatesKey, payload, c.ttl)
}

// Invalidate drops the cached window after any mutation that can change
// per-date capacity.
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, availableDatesKey)
}
