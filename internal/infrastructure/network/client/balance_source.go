package client

import (
	"context"
	"fmt"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const evmSourceName = "evm"

// NativeBalanceSource implements port.BalanceSource by reading the native balance of
// every wallet on every network. Chain is the network name, Currency its native symbol.
type NativeBalanceSource struct {
	networks      []entity.NetworkDefinition
	wallets       []string
	provider      port.BlockchainClientProvider
	maxConcurrent int
	logger        port.Logger
}

func NewNativeBalanceSource(
	networks []entity.NetworkDefinition,
	wallets []string,
	provider port.BlockchainClientProvider,
	maxConcurrent int,
	logger port.Logger,
) *NativeBalanceSource {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &NativeBalanceSource{
		networks:      networks,
		wallets:       wallets,
		provider:      provider,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

func (s *NativeBalanceSource) Name() string { return evmSourceName }

type nativeResult struct {
	balance *entity.Balance
	problem *entity.SourceError
}

// Balances queries all (network, wallet) pairs concurrently. The result order is
// networks in configured order, then wallets in configured order; failed pairs
// are reported as SourceErrors.
func (s *NativeBalanceSource) Balances(ctx context.Context) ([]entity.Balance, []entity.SourceError, error) {
	results := make([]nativeResult, len(s.networks)*len(s.wallets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for ni, netDef := range s.networks {
		for wi, wallet := range s.wallets {
			idx := ni*len(s.wallets) + wi
			netDef, wallet := netDef, wallet
			g.Go(func() error {
				results[idx] = s.fetchOne(gctx, netDef, wallet)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("native balances: %w", err)
	}

	var balances []entity.Balance
	var problems []entity.SourceError
	for _, r := range results {
		if r.problem != nil {
			problems = append(problems, *r.problem)
			continue
		}
		balances = append(balances, *r.balance)
	}
	s.logger.Info("Native balances fetched",
		"networks", len(s.networks),
		"wallets", len(s.wallets),
		"balances", len(balances),
		"errors", len(problems))
	return balances, problems, nil
}

func (s *NativeBalanceSource) fetchOne(ctx context.Context, netDef entity.NetworkDefinition, wallet string) nativeResult {
	fail := func(err error) nativeResult {
		s.logger.Warn("Native balance fetch failed", "network", netDef.Name, "wallet", wallet, "error", err)
		return nativeResult{problem: &entity.SourceError{
			Source:        evmSourceName,
			Chain:         netDef.Name,
			WalletAddress: wallet,
			Message:       err.Error(),
		}}
	}

	client, err := s.provider.GetClient(ctx, netDef)
	if err != nil {
		return fail(err)
	}
	wei, err := client.GetNativeBalance(ctx, wallet)
	if err != nil {
		return fail(err)
	}
	s.logger.Debug("Native balance", "network", netDef.Name, "wallet", wallet,
		"amount", utils.FormatBigInt(wei, netDef.Decimals), "symbol", netDef.NativeSymbol)
	return nativeResult{balance: &entity.Balance{
		Chain:    netDef.Name,
		Currency: netDef.NativeSymbol,
		Amount:   utils.ScaleDown(wei, netDef.Decimals),
	}}
}
