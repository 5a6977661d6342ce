package provider

import (
	"context"
	"errors"
	"fmt"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/metrics"
)

type balanceProviderImpl struct {
	sources []port.BalanceSource
	logger  port.Logger
}

// NewBalanceProvider combines sources into one port.BalanceSource. Balances are
// concatenated in source order.
func NewBalanceProvider(logger port.Logger, sources ...port.BalanceSource) port.BalanceSource {
	return &balanceProviderImpl{sources: sources, logger: logger}
}

func (p *balanceProviderImpl) Name() string { return "composite" }

// Balances reads every source in turn. A source that fails outright is reported as a
// SourceError; the call only fails when every source did.
func (p *balanceProviderImpl) Balances(ctx context.Context) ([]entity.Balance, []entity.SourceError, error) {
	var (
		balances []entity.Balance
		problems []entity.SourceError
		failures []error
	)

	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		b, errs, err := src.Balances(ctx)
		if err != nil {
			p.logger.Error("Balance source failed", "source", src.Name(), "error", err)
			metrics.BalanceSourceErrors.WithLabelValues(src.Name()).Inc()
			failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
			problems = append(problems, entity.SourceError{Source: src.Name(), Message: err.Error()})
			continue
		}
		if len(errs) > 0 {
			metrics.BalanceSourceErrors.WithLabelValues(src.Name()).Add(float64(len(errs)))
		}
		p.logger.Debug("Balance source read", "source", src.Name(), "balances", len(b), "errors", len(errs))
		balances = append(balances, b...)
		problems = append(problems, errs...)
	}

	if len(p.sources) > 0 && len(failures) == len(p.sources) {
		return nil, nil, fmt.Errorf("all balance sources failed: %w", errors.Join(failures...))
	}
	return balances, problems, nil
}
