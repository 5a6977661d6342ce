package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
)

const defaultProviderConnectionTimeout = 10 * time.Second

// DialFunc creates a client for one network.
type DialFunc func(ctx context.Context, netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (port.BlockchainClient, error)

// evmClientProvider implements port.BlockchainClientProvider and keeps one client per network.
type evmClientProvider struct {
	clients           map[string]port.BlockchainClient
	mu                sync.Mutex
	dial              DialFunc
	logger            port.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a provider. A nil dial uses NewEVMClient.
func NewEVMClientProvider(rpcCallTimeout time.Duration, logger port.Logger, dial DialFunc) port.BlockchainClientProvider {
	if dial == nil {
		dial = NewEVMClient
	}
	return &evmClientProvider{
		clients:           make(map[string]port.BlockchainClient),
		dial:              dial,
		logger:            logger,
		connectionTimeout: defaultProviderConnectionTimeout,
		rpcCallTimeout:    rpcCallTimeout,
	}
}

// GetClient returns the cached client for netDef, dialing on first use. Dialing
// happens outside the lock so cached lookups never wait on a slow endpoint.
func (p *evmClientProvider) GetClient(ctx context.Context, netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	clientKey := fmt.Sprintf("%d/%s", netDef.ChainID, netDef.Name)

	p.mu.Lock()
	client, exists := p.clients[clientKey]
	p.mu.Unlock()
	if exists {
		return client, nil
	}

	p.logger.Info("Creating new EVM client", "network", netDef.Name, "rpc", netDef.RPCURL)
	newClient, err := p.dial(ctx, netDef, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.clients[clientKey]; ok {
		closeClient(newClient)
		return existing, nil
	}
	p.clients[clientKey] = newClient
	return newClient, nil
}

// closeClient releases a client that lost the race to be cached.
func closeClient(c port.BlockchainClient) {
	if closer, ok := c.(interface{ Close() }); ok {
		closer.Close()
	}
}
