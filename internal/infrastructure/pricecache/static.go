package pricecache

import (
	"context"
	"fmt"

	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// StaticFeed is a fixed price list, used when the configuration pins prices instead of
// calling the external feed.
type StaticFeed struct {
	records []entity.PriceRecord
}

// NewStaticFeed parses currency -> price strings.
func NewStaticFeed(prices map[string]string) (*StaticFeed, error) {
	records := make([]entity.PriceRecord, 0, len(prices))
	for currency, raw := range prices {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("static price for %s: %w", currency, err)
		}
		records = append(records, entity.PriceRecord{
			Currency: currency,
			Price:    decimal.NewNullDecimal(price),
		})
	}
	return &StaticFeed{records: records}, nil
}

// FetchPrices implements port.PriceFeedClient.
func (s *StaticFeed) FetchPrices(context.Context) ([]entity.PriceRecord, error) {
	out := make([]entity.PriceRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
