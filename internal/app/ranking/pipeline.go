package ranking

import (
	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Pipeline runs filter, rank and format as one step.
type Pipeline struct {
	filter    *BalanceFilter
	ranker    *BalanceRanker
	formatter *BalanceFormatter
}

// NewPipeline builds the pipeline around a single priority table.
func NewPipeline(priorities map[string]int, eligible EligibilityPolicy) *Pipeline {
	resolver := NewPriorityResolver(priorities)
	return &Pipeline{
		filter:    NewBalanceFilter(resolver, eligible),
		ranker:    NewBalanceRanker(resolver),
		formatter: NewBalanceFormatter(),
	}
}

// Run derives the display list. It never mutates balances or prices.
func (p *Pipeline) Run(balances []entity.Balance, prices entity.PriceTable) []entity.DisplayBalance {
	return p.formatter.Format(p.ranker.Rank(p.filter.Filter(balances)), prices)
}

// TotalUSD sums the USD value of a display list.
func TotalUSD(balances []entity.DisplayBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.USDValue)
	}
	return total
}
