package provider

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"kisan/internal/model"
)

// CachedMarket remembers the last good table per location for the lifetime
// of the process and serves it, marked Stale, when the upstream fails.
type CachedMarket struct {
	Upstream MarketPrices
	cache    *cache.Cache
	log      *zap.Logger
}

// NewCachedMarket wraps upstream. Entries older than maxAge are not served.
func NewCachedMarket(upstream MarketPrices, maxAge time.Duration, log *zap.Logger) *CachedMarket {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedMarket{
		Upstream: upstream,
		cache:    cache.New(maxAge, maxAge*2),
		log:      log,
	}
}

func (c *CachedMarket) Prices(ctx context.Context, location string) (model.PriceTable, error) {
	table, err := c.Upstream.Prices(ctx, location)
	if err == nil {
		c.cache.Set(location, table, cache.DefaultExpiration)
		return table, nil
	}
	// Caller cancellation and bad input are not upstream outages.
	if ctx.Err() != nil || errors.Is(err, ErrInvalidInput) {
		return table, err
	}
	if x, found := c.cache.Get(location); found {
		stale := x.(model.PriceTable)
		stale.Stale = true
		c.log.Warn("serving stale prices",
			zap.String("location", location),
			zap.Time("fetched_at", stale.FetchedAt),
			zap.Error(err),
		)
		return stale, nil
	}
	return table, err
}
