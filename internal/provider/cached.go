package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var _ Adapter = (*CachedAdapter)(nil)

// CachedAdapter wraps an Adapter with Redis caching of whole snapshots, so
// repeated backfills over the same dates skip the upstream round trip.
type CachedAdapter struct {
	adapter      Adapter
	cache        *redis.Client
	ttl          time.Duration
	providerName string
}

// NewCachedAdapter creates a CachedAdapter around the given adapter.
func NewCachedAdapter(adapter Adapter, cache *redis.Client, ttl time.Duration, providerName string) *CachedAdapter {
	return &CachedAdapter{
		adapter:      adapter,
		cache:        cache,
		ttl:          ttl,
		providerName: providerName,
	}
}

// SetEndpoint forwards to the wrapped adapter.
func (c *CachedAdapter) SetEndpoint(baseURL, segment string) {
	c.adapter.SetEndpoint(baseURL, segment)
}

func (c *CachedAdapter) cacheKey(source, target, date string) string {
	if date == "" {
		date = EndpointLatest
	}
	if target == "" {
		target = "*"
	}
	return fmt.Sprintf("provider_rates:%s:{%s:%s}:%s", c.providerName, source, target, date)
}

// cachedSnapshot is the stored wire form; decimals travel as strings to avoid
// binary-float drift through the cache.
type cachedSnapshot struct {
	SourceCode    string            `json:"source_code"`
	Rates         map[string]string `json:"rates"`
	ValuationDate string            `json:"valuation_date"`
}

// FetchRates checks the cache before calling the underlying adapter. Cache
// failures fall through to the adapter; fetch errors are never cached.
func (c *CachedAdapter) FetchRates(ctx context.Context, source, target, date string) (*RateSnapshot, error) {
	if c.cache == nil {
		return c.adapter.FetchRates(ctx, source, target, date)
	}

	key := c.cacheKey(source, target, date)
	if raw, err := c.cache.Get(ctx, key).Bytes(); err == nil {
		if snap, err := decodeSnapshot(raw); err == nil {
			return snap, nil
		}
	}

	snap, err := c.adapter.FetchRates(ctx, source, target, date)
	if err != nil {
		return nil, err
	}

	if raw, err := encodeSnapshot(snap); err == nil {
		_ = c.cache.Set(ctx, key, raw, c.ttl).Err()
	}
	return snap, nil
}

func encodeSnapshot(snap *RateSnapshot) ([]byte, error) {
	stored := cachedSnapshot{
		SourceCode:    snap.SourceCode,
		Rates:         make(map[string]string, len(snap.Rates)),
		ValuationDate: snap.ValuationDate,
	}
	for code, rate := range snap.Rates {
		stored.Rates[code] = rate.String()
	}
	return json.Marshal(stored)
}

func decodeSnapshot(raw []byte) (*RateSnapshot, error) {
	var stored cachedSnapshot
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	snap := &RateSnapshot{
		SourceCode:    stored.SourceCode,
		Rates:         make(map[string]decimal.Decimal, len(stored.Rates)),
		ValuationDate: stored.ValuationDate,
	}
	for code, s := range stored.Rates {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		snap.Rates[code] = d
	}
	return snap, nil
}
