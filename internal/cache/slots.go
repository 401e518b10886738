package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const slotTTL = 5 * time.Minute

// SlotCache is a fail-open wrapper around the backend store: any backend
// error is treated as a miss or a no-op write, so availability lookups
// and bookings never depend on the cache being up. Staleness is bounded
// by the TTL and is acceptable because conflict decisions always go to
// the database.
type SlotCache struct {
	store Store
}

func NewSlotCache(store Store) *SlotCache {
	return &SlotCache{store: store}
}

// SlotKey builds the canonical cache key for a barber/day/service triple.
// serviceID may be uuid.Nil, which maps to the "default" duration bucket.
func SlotKey(barberID uuid.UUID, date time.Time, serviceID uuid.UUID) string {
	svc := "default"
	if serviceID != uuid.Nil {
		svc = serviceID.String()
	}
	return fmt.Sprintf("barbers:%s:slots:%s:%s", barberID, date.UTC().Format("2006-01-02"), svc)
}

func (c *SlotCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.store.Get(ctx, key)
	if err != nil {
		if err != ErrMiss {
			log.Printf("slot cache: read failed for %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *SlotCache) Set(ctx context.Context, key, payload string) {
	if err := c.store.Set(ctx, key, payload, slotTTL); err != nil {
		log.Printf("slot cache: write failed for %s: %v", key, err)
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			log.Printf("slot cache: invalidate failed for %s: %v", key, err)
		}
	}
}
