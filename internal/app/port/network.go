package port

import (
	"context"
	"math/big"

	"balance_ranker/internal/domain/entity"
)

// BlockchainClient reads native balances from one network.
type BlockchainClient interface {
	// GetNativeBalance returns the wallet balance in the smallest unit (wei).
	GetNativeBalance(ctx context.Context, walletAddress string) (*big.Int, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// BlockchainClientProvider hands out one client per network.
type BlockchainClientProvider interface {
	GetClient(ctx context.Context, networkDefinition entity.NetworkDefinition) (BlockchainClient, error)
}
