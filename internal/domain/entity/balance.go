package entity

import "github.com/shopspring/decimal"

// Balance is a holding of one currency on one chain, as produced by a balance source.
// Chain is only a ranking key; Currency is the symbol used for pricing.
type Balance struct {
	Chain    string          `json:"chain" yaml:"chain"`
	Currency string          `json:"currency" yaml:"currency"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// RankedBalance is a Balance annotated with the priority of its chain.
type RankedBalance struct {
	Balance
	Priority int `json:"priority"`
}

// DisplayBalance is the render-ready form of a RankedBalance.
type DisplayBalance struct {
	RankedBalance
	FormattedAmount string          `json:"formattedAmount"`
	USDValue        decimal.Decimal `json:"usdValue"`
}
