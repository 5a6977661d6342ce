package client

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closableClient struct {
	def    entity.NetworkDefinition
	closed atomic.Bool
}

func (c *closableClient) GetNativeBalance(context.Context, string) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (c *closableClient) Definition() entity.NetworkDefinition { return c.def }

func (c *closableClient) Close() { c.closed.Store(true) }

func TestEVMClientProvider_CachesClient(t *testing.T) {
	var dials atomic.Int32
	provider := NewEVMClientProvider(time.Second, logger.NewNop(),
		func(_ context.Context, def entity.NetworkDefinition, _, _ time.Duration) (port.BlockchainClient, error) {
			dials.Add(1)
			return &closableClient{def: def}, nil
		})
	eth := entity.NetworkDefinition{ChainID: 1, Name: "Ethereum"}

	first, err := provider.GetClient(context.Background(), eth)
	require.NoError(t, err)
	second, err := provider.GetClient(context.Background(), eth)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), dials.Load())
}

func TestEVMClientProvider_SlowDialDoesNotBlockCachedLookups(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	provider := NewEVMClientProvider(time.Second, logger.NewNop(),
		func(_ context.Context, def entity.NetworkDefinition, _, _ time.Duration) (port.BlockchainClient, error) {
			if def.Name == "Slow" {
				close(slowStarted)
				<-releaseSlow
			}
			return &closableClient{def: def}, nil
		})
	fast := entity.NetworkDefinition{ChainID: 1, Name: "Ethereum"}
	slow := entity.NetworkDefinition{ChainID: 2, Name: "Slow"}

	cached, err := provider.GetClient(context.Background(), fast)
	require.NoError(t, err)

	slowDone := make(chan error, 1)
	go func() {
		_, err := provider.GetClient(context.Background(), slow)
		slowDone <- err
	}()
	<-slowStarted

	lookupDone := make(chan port.BlockchainClient, 1)
	go func() {
		c, _ := provider.GetClient(context.Background(), fast)
		lookupDone <- c
	}()

	select {
	case got := <-lookupDone:
		assert.Same(t, cached, got)
	case <-time.After(time.Second):
		t.Fatal("cached lookup waited on another network's dial")
	}

	close(releaseSlow)
	require.NoError(t, <-slowDone)
}

func TestEVMClientProvider_ConcurrentDialsKeepOneClient(t *testing.T) {
	var both sync.WaitGroup
	both.Add(2)
	var (
		mu      sync.Mutex
		created []*closableClient
	)
	provider := NewEVMClientProvider(time.Second, logger.NewNop(),
		func(_ context.Context, def entity.NetworkDefinition, _, _ time.Duration) (port.BlockchainClient, error) {
			c := &closableClient{def: def}
			mu.Lock()
			created = append(created, c)
			mu.Unlock()
			both.Done()
			both.Wait()
			return c, nil
		})
	eth := entity.NetworkDefinition{ChainID: 1, Name: "Ethereum"}

	results := make([]port.BlockchainClient, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := provider.GetClient(context.Background(), eth)
			assert.NoError(t, err)
			results[i] = c
		}(i)
	}
	wg.Wait()

	assert.Same(t, results[0], results[1])
	require.Len(t, created, 2)
	closed := 0
	for _, c := range created {
		if c.closed.Load() {
			closed++
			assert.NotSame(t, results[0], port.BlockchainClient(c))
		}
	}
	assert.Equal(t, 1, closed, "the client that lost the race is closed")
}
