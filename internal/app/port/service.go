package port

import (
	"context"

	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// PortfolioService builds the wallet display list.
type PortfolioService interface {
	DisplayBalances(ctx context.Context) (entity.WalletView, error)
}

// SwapService quotes conversions between priced currencies.
type SwapService interface {
	Quote(ctx context.Context, from, to string, amount decimal.Decimal) (entity.ConversionResult, error)
	Currencies(ctx context.Context) ([]entity.CurrencyInfo, error)
}
