package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is a single entry of the external price feed. Price is not valid
// when the feed sent null or omitted the field.
type PriceRecord struct {
	Currency string              `json:"currency"`
	Date     time.Time           `json:"date"`
	Price    decimal.NullDecimal `json:"price"`
}

// PriceTable maps a currency symbol to its unit price.
type PriceTable map[string]decimal.Decimal

// Lookup returns the price of currency and whether the table has it.
func (t PriceTable) Lookup(currency string) (decimal.Decimal, bool) {
	price, ok := t[currency]
	return price, ok
}

// PriceOrZero returns the price of currency, or zero when it is absent.
func (t PriceTable) PriceOrZero(currency string) decimal.Decimal {
	if price, ok := t[currency]; ok {
		return price
	}
	return decimal.Zero
}

// Currencies returns the symbols in the table in no particular order.
func (t PriceTable) Currencies() []string {
	out := make([]string, 0, len(t))
	for currency := range t {
		out = append(out, currency)
	}
	return out
}

// NewPriceTable builds a table from feed records. Records without a price or with an
// empty currency or a negative price are skipped and returned separately so the
// caller can report them. A later record for the same currency replaces an earlier one.
func NewPriceTable(records []PriceRecord) (PriceTable, []PriceRecord) {
	table := make(PriceTable, len(records))
	var skipped []PriceRecord
	for _, rec := range records {
		if rec.Currency == "" || !rec.Price.Valid || rec.Price.Decimal.IsNegative() {
			skipped = append(skipped, rec)
			continue
		}
		table[rec.Currency] = rec.Price.Decimal
	}
	return table, skipped
}
