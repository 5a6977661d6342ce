package pricecache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFeed struct {
	calls   atomic.Int32
	release chan struct{}
	records []entity.PriceRecord
	err     error
}

func (f *countingFeed) FetchPrices(context.Context) ([]entity.PriceRecord, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.records, f.err
}

func rec(currency, price string) entity.PriceRecord {
	return entity.PriceRecord{Currency: currency, Price: decimal.NewNullDecimal(decimal.RequireFromString(price))}
}

func TestPriceTableIsCached(t *testing.T) {
	feed := &countingFeed{records: []entity.PriceRecord{rec("ETH", "1000"), {Currency: "NULL"}}}
	p := NewProvider(feed, time.Minute, logger.NewNop())

	first, err := p.PriceTable(context.Background())
	require.NoError(t, err)
	second, err := p.PriceTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), feed.calls.Load())
	assert.Equal(t, first, second)
	assert.Len(t, first, 1)

	p.Invalidate()
	_, err = p.PriceTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), feed.calls.Load())
}

func TestConcurrentMissesShareOneRequest(t *testing.T) {
	feed := &countingFeed{release: make(chan struct{}), records: []entity.PriceRecord{rec("ETH", "1000")}}
	p := NewProvider(feed, time.Minute, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := p.PriceTable(context.Background())
			assert.NoError(t, err)
			assert.Len(t, table, 1)
		}()
	}
	require.Eventually(t, func() bool { return feed.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(feed.release)
	wg.Wait()

	assert.Equal(t, int32(1), feed.calls.Load())
}

func TestFeedErrorIsNotCached(t *testing.T) {
	feed := &countingFeed{err: errors.New("feed down")}
	p := NewProvider(feed, time.Minute, logger.NewNop())

	_, err := p.PriceTable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed down")

	feed.err = nil
	feed.records = []entity.PriceRecord{rec("USDC", "1")}
	table, err := p.PriceTable(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 1)
}

func TestStaticFeed(t *testing.T) {
	feed, err := NewStaticFeed(map[string]string{"ETH": "2000", "USDC": "1"})
	require.NoError(t, err)

	table, err := NewProvider(feed, time.Minute, logger.NewNop()).PriceTable(context.Background())
	require.NoError(t, err)
	assert.True(t, table["ETH"].Equal(decimal.NewFromInt(2000)))

	_, err = NewStaticFeed(map[string]string{"ETH": "lots"})
	assert.Error(t, err)
}

type blockingFeed struct {
	calls     atomic.Int32
	startOnce sync.Once
	started   chan struct{}
	release   chan struct{}
	records   []entity.PriceRecord
}

func (f *blockingFeed) FetchPrices(ctx context.Context) ([]entity.PriceRecord, error) {
	f.calls.Add(1)
	f.startOnce.Do(func() { close(f.started) })
	<-f.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.records, nil
}

func TestCancelledCallerDoesNotFailSharedRefresh(t *testing.T) {
	feed := &blockingFeed{
		started: make(chan struct{}),
		release: make(chan struct{}),
		records: []entity.PriceRecord{rec("ETH", "1000")},
	}
	p := NewProvider(feed, time.Minute, logger.NewNop())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.PriceTable(firstCtx)
		firstErr <- err
	}()
	<-feed.started

	type result struct {
		table entity.PriceTable
		err   error
	}
	secondDone := make(chan result, 1)
	go func() {
		table, err := p.PriceTable(context.Background())
		secondDone <- result{table, err}
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(feed.release)
	second := <-secondDone
	require.NoError(t, second.err)
	assert.Len(t, second.table, 1)
	assert.Equal(t, int32(1), feed.calls.Load())

	table, err := p.PriceTable(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 1, "the shared refresh still fills the cache")
}
