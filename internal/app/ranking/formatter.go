package ranking

import (
	"strings"

	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits in a formatted amount.
const DisplayPlaces = 2

// BalanceFormatter turns ranked balances into display records.
type BalanceFormatter struct{}

func NewBalanceFormatter() *BalanceFormatter {
	return &BalanceFormatter{}
}

// Format attaches the 2-decimal amount and the USD value to every balance.
// A currency missing from prices is valued at zero.
func (f *BalanceFormatter) Format(balances []entity.RankedBalance, prices entity.PriceTable) []entity.DisplayBalance {
	out := make([]entity.DisplayBalance, len(balances))
	for i, b := range balances {
		out[i] = entity.DisplayBalance{
			RankedBalance:   b,
			FormattedAmount: FormatAmount(b.Amount),
			USDValue:        prices.PriceOrZero(b.Currency).Mul(b.Amount),
		}
	}
	return out
}

// FormatAmount renders amount with exactly two fractional digits, half away from zero.
// A negative amount keeps its sign even when it rounds to zero ("-0.00").
func FormatAmount(amount decimal.Decimal) string {
	out := amount.StringFixed(DisplayPlaces)
	if amount.IsNegative() && !strings.HasPrefix(out, "-") {
		out = "-" + out
	}
	return out
}
