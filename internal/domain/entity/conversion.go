package entity

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConversionResult is the outcome of converting an amount of one currency into another.
type ConversionResult struct {
	From         string          `json:"fromCurrency"`
	To           string          `json:"toCurrency"`
	InputAmount  decimal.Decimal `json:"inputAmount"`
	Rate         decimal.Decimal `json:"rate"`
	OutputAmount decimal.Decimal `json:"outputAmount"`
}

var (
	// ErrInvalidAsset is matched by every *InvalidAssetError.
	ErrInvalidAsset = errors.New("invalid asset")
	// ErrDivisionByZero is returned when the target currency is priced at zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// InvalidAssetError reports a currency missing from the price table.
type InvalidAssetError struct {
	Asset string
}

func (e *InvalidAssetError) Error() string {
	return fmt.Sprintf("invalid asset %q: no price available", e.Asset)
}

// Is makes errors.Is(err, ErrInvalidAsset) hold for any InvalidAssetError.
func (e *InvalidAssetError) Is(target error) bool {
	return target == ErrInvalidAsset
}
