// Package exchange converts an amount of one currency into another through their unit prices.
package exchange

import (
	"fmt"

	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ResultPlaces is how many fractional digits a conversion result is shown with.
const ResultPlaces = 6

// Rate returns price(from) / price(to).
func Rate(prices entity.PriceTable, from, to string) (decimal.Decimal, error) {
	fromPrice, ok := prices.Lookup(from)
	if !ok {
		return decimal.Decimal{}, &entity.InvalidAssetError{Asset: from}
	}
	toPrice, ok := prices.Lookup(to)
	if !ok {
		return decimal.Decimal{}, &entity.InvalidAssetError{Asset: to}
	}
	if toPrice.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("convert %s to %s: %s is priced at zero: %w", from, to, to, entity.ErrDivisionByZero)
	}
	return fromPrice.Div(toPrice), nil
}

// Convert returns amount expressed in to. No rounding is applied.
func Convert(prices entity.PriceTable, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := Rate(prices, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate), nil
}

// Quote is Convert returning the rate and inputs alongside the output.
func Quote(prices entity.PriceTable, from, to string, amount decimal.Decimal) (entity.ConversionResult, error) {
	rate, err := Rate(prices, from, to)
	if err != nil {
		return entity.ConversionResult{}, err
	}
	return entity.ConversionResult{
		From:         from,
		To:           to,
		InputAmount:  amount,
		Rate:         rate,
		OutputAmount: amount.Mul(rate),
	}, nil
}

// FormatResult renders a conversion output for display.
func FormatResult(amount decimal.Decimal) string {
	return amount.StringFixed(ResultPlaces)
}
