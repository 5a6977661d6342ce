package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EVMClient implements port.BlockchainClient for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// NewEVMClient dials the network's RPC endpoint.
func NewEVMClient(ctx context.Context, netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (port.BlockchainClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, netDef.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s for network %s: %w", netDef.RPCURL, netDef.Name, err)
	}
	return &EVMClient{ethClient: client, netDef: netDef, rpcCallTimeout: rpcCallTimeout}, nil
}

// GetNativeBalance returns the latest native balance of walletAddress in wei.
func (c *EVMClient) GetNativeBalance(ctx context.Context, walletAddress string) (*big.Int, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("invalid wallet address %q", walletAddress)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	balance, err := c.ethClient.BalanceAt(callCtx, common.HexToAddress(walletAddress), nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance for %s on %s: %w", walletAddress, c.netDef.Name, err)
	}
	return balance, nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// Close releases the RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}
