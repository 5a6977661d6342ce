package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"balance_ranker/internal/app/exchange"
	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// SwapServiceImpl implements port.SwapService.
type SwapServiceImpl struct {
	priceProvider port.PriceProvider
	iconBaseURL   string
	logger        port.Logger
}

// NewSwapService creates a new instance of SwapServiceImpl. Currency icons are
// served as <iconBaseURL>/<SYMBOL>.svg.
func NewSwapService(pp port.PriceProvider, iconBaseURL string, l port.Logger) port.SwapService {
	return &SwapServiceImpl{
		priceProvider: pp,
		iconBaseURL:   strings.TrimRight(iconBaseURL, "/"),
		logger:        l,
	}
}

// Quote converts amount of from into to at the current prices.
func (s *SwapServiceImpl) Quote(ctx context.Context, from, to string, amount decimal.Decimal) (entity.ConversionResult, error) {
	prices, err := s.priceProvider.PriceTable(ctx)
	if err != nil {
		metrics.Conversions.WithLabelValues("error").Inc()
		s.logger.Error("Failed to get price table for quote", "error", err)
		return entity.ConversionResult{}, fmt.Errorf("get prices: %w", err)
	}

	result, err := exchange.Quote(prices, from, to, amount)
	if err != nil {
		metrics.Conversions.WithLabelValues(conversionLabel(err)).Inc()
		s.logger.Warn("Quote rejected", "from", from, "to", to, "amount", amount.String(), "error", err)
		return entity.ConversionResult{}, err
	}

	metrics.Conversions.WithLabelValues("ok").Inc()
	s.logger.Debug("Quote computed",
		"from", from,
		"to", to,
		"amount", amount.String(),
		"output", exchange.FormatResult(result.OutputAmount))
	return result, nil
}

// Currencies lists every priced currency sorted by symbol.
func (s *SwapServiceImpl) Currencies(ctx context.Context) ([]entity.CurrencyInfo, error) {
	prices, err := s.priceProvider.PriceTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("get prices: %w", err)
	}

	symbols := prices.Currencies()
	sort.Strings(symbols)

	out := make([]entity.CurrencyInfo, 0, len(symbols))
	for _, symbol := range symbols {
		out = append(out, entity.CurrencyInfo{
			Currency: symbol,
			Price:    prices[symbol],
			IconURL:  s.iconURL(symbol),
		})
	}
	return out, nil
}

func (s *SwapServiceImpl) iconURL(symbol string) string {
	if s.iconBaseURL == "" {
		return ""
	}
	return s.iconBaseURL + "/" + symbol + ".svg"
}

func conversionLabel(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidAsset):
		return "invalid_asset"
	case errors.Is(err, entity.ErrDivisionByZero):
		return "division_by_zero"
	default:
		return "error"
	}
}
