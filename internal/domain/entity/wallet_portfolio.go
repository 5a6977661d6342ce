package entity

import "github.com/shopspring/decimal"

// WalletView is the display list together with its aggregated USD value.
type WalletView struct {
	Balances      []DisplayBalance `json:"balances"`
	TotalValueUSD decimal.Decimal  `json:"totalValueUSD"`
	SourceErrors  []SourceError    `json:"sourceErrors,omitempty"`
}

// CurrencyInfo is one selectable currency for a swap.
type CurrencyInfo struct {
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
	IconURL  string          `json:"iconURL"`
}
