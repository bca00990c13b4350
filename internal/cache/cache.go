// Package cache holds short-lived analysis artifacts so repeated
// requests (Telegram /report, the HTTP report endpoint) do not trigger
// a fresh round of market fetches.
package cache

import (
	"sync"
	"time"

	"StockAdvisor/internal/model"
)

const reportKey = "last-report"

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. The zero value is not usable; call New.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]entry
}

// New returns a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, items: make(map[string]entry)}
}

func (c *Cache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

func (c *Cache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// PutReport stores the most recent portfolio report.
func (c *Cache) PutReport(r *model.Report) {
	c.set(reportKey, r)
}

// LastReport returns the most recent unexpired report, if any.
func (c *Cache) LastReport() (*model.Report, bool) {
	v, ok := c.get(reportKey)
	if !ok {
		return nil, false
	}
	return v.(*model.Report), true
}

// PutSeries stores a fetched price series under its symbol and period.
func (c *Cache) PutSeries(symbol, period string, s *model.PriceSeries) {
	c.set("series:"+symbol+":"+period, s)
}

// Series returns a cached price series for symbol and period, if any.
func (c *Cache) Series(symbol, period string) (*model.PriceSeries, bool) {
	v, ok := c.get("series:" + symbol + ":" + period)
	if !ok {
		return nil, false
	}
	return v.(*model.PriceSeries), true
}

// Cleanup drops expired entries. The scheduler calls this between runs;
// nothing else depends on it for correctness.
func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}
