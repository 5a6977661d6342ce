package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ScaleDown converts an integer amount in base units into a decimal value,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => 1.2345
func ScaleDown(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals)
}

// FormatBigInt renders a base-unit amount as a plain decimal string without trailing zeros.
func FormatBigInt(amount *big.Int, decimals int32) string {
	return ScaleDown(amount, decimals).String()
}
