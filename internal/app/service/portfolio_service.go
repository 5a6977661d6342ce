package service

import (
	"context"
	"fmt"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/app/ranking"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/metrics"
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	balanceSource port.BalanceSource
	priceProvider port.PriceProvider
	pipeline      *ranking.Pipeline
	logger        port.Logger
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	bs port.BalanceSource,
	pp port.PriceProvider,
	pipeline *ranking.Pipeline,
	l port.Logger,
) port.PortfolioService {
	return &PortfolioServiceImpl{
		balanceSource: bs,
		priceProvider: pp,
		pipeline:      pipeline,
		logger:        l,
	}
}

// DisplayBalances reads the current balances and prices and runs them through the
// ranking pipeline. Partial source failures are returned inside the view.
func (s *PortfolioServiceImpl) DisplayBalances(ctx context.Context) (entity.WalletView, error) {
	balances, sourceErrors, err := s.balanceSource.Balances(ctx)
	if err != nil {
		s.logger.Error("Failed to load balances", "source", s.balanceSource.Name(), "error", err)
		return entity.WalletView{}, fmt.Errorf("load balances: %w", err)
	}

	prices, err := s.priceProvider.PriceTable(ctx)
	if err != nil {
		s.logger.Error("Failed to get price table", "error", err)
		return entity.WalletView{}, fmt.Errorf("get prices: %w", err)
	}

	display := s.pipeline.Run(balances, prices)
	total := ranking.TotalUSD(display)

	metrics.PipelineRuns.Inc()
	metrics.DisplayedBalances.Observe(float64(len(display)))
	s.logger.Info("Display balances computed",
		"input", len(balances),
		"displayed", len(display),
		"source_errors", len(sourceErrors),
		"total_usd", total.StringFixed(ranking.DisplayPlaces))

	return entity.WalletView{
		Balances:      display,
		TotalValueUSD: total,
		SourceErrors:  sourceErrors,
	}, nil
}
