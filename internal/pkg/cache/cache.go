package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache is a best-effort read-through cache for computed availability.
// A nil *SlotCache disables caching entirely; every method is nil-safe.
// Staleness is bounded by the TTL and by explicit invalidation on booking
// writes; a stale hit at worst produces a slot_taken at commit time.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if client == nil {
		return nil
	}
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(barberID, serviceID, date string) string {
	return fmt.Sprintf("avail:%s:%s:%s", barberID, date, serviceID)
}

func (c *SlotCache) Get(ctx context.Context, barberID, serviceID, date string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, slotKey(barberID, serviceID, date)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *SlotCache) Set(ctx context.Context, barberID, serviceID, date string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, slotKey(barberID, serviceID, date), raw, c.ttl).Err()
}

// InvalidateBarberDay drops every cached slot list for the barber/date,
// across all services. Called by the booking transaction after a write.
func (c *SlotCache) InvalidateBarberDay(ctx context.Context, barberID, date string) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("avail:%s:%s:*", barberID, date)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}
