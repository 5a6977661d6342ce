package port

import (
	"context"

	"balance_ranker/internal/domain/entity"
)

// PriceFeedClient fetches raw price records from the external feed.
type PriceFeedClient interface {
	FetchPrices(ctx context.Context) ([]entity.PriceRecord, error)
}

// PriceProvider supplies the current price table.
type PriceProvider interface {
	PriceTable(ctx context.Context) (entity.PriceTable, error)
}
