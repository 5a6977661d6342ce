// Package pricecache serves price tables from the feed with a TTL cache in front.
package pricecache

import (
	"context"
	"fmt"
	"time"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	tableKey = "price-table"
	// refreshTimeout bounds a shared refresh that no single caller can cancel.
	refreshTimeout = 30 * time.Second
)

// Provider implements port.PriceProvider. Concurrent misses share one feed request.
type Provider struct {
	feed   port.PriceFeedClient
	cache  *cache.Cache
	group  singleflight.Group
	logger port.Logger
}

// NewProvider caches tables built from feed for ttl.
func NewProvider(feed port.PriceFeedClient, ttl time.Duration, logger port.Logger) *Provider {
	return &Provider{
		feed:   feed,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// PriceTable returns the cached table or refreshes it from the feed. The refresh is
// shared by concurrent callers and runs detached from their contexts; a caller whose
// ctx ends stops waiting without failing the others.
func (p *Provider) PriceTable(ctx context.Context) (entity.PriceTable, error) {
	if cached, ok := p.cache.Get(tableKey); ok {
		metrics.PriceCacheLookups.WithLabelValues("hit").Inc()
		return cached.(entity.PriceTable), nil
	}
	metrics.PriceCacheLookups.WithLabelValues("miss").Inc()

	ch := p.group.DoChan(tableKey, func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return p.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for price table: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			p.logger.Debug("Shared in-flight price feed request")
		}
		return res.Val.(entity.PriceTable), nil
	}
}

// Invalidate drops the cached table so the next call refetches.
func (p *Provider) Invalidate() {
	p.cache.Delete(tableKey)
}

func (p *Provider) refresh(ctx context.Context) (entity.PriceTable, error) {
	records, err := p.feed.FetchPrices(ctx)
	if err != nil {
		p.logger.Error("Failed to refresh price table", "error", err)
		return nil, fmt.Errorf("refresh price table: %w", err)
	}

	table, skipped := entity.NewPriceTable(records)
	for _, rec := range skipped {
		if rec.Price.Valid && rec.Price.Decimal.IsNegative() {
			p.logger.Warn("Discarding negative price from feed", "currency", rec.Currency, "price", rec.Price.Decimal.String())
		}
	}
	p.cache.SetDefault(tableKey, table)
	p.logger.Info("Price table refreshed",
		"records", len(records),
		"currencies", len(table),
		"skipped", len(skipped))
	return table, nil
}
