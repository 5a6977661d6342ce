package ranking

import (
	"sort"

	"balance_ranker/internal/domain/entity"
)

// BalanceRanker orders balances by descending chain priority.
type BalanceRanker struct {
	resolver *PriorityResolver
}

func NewBalanceRanker(resolver *PriorityResolver) *BalanceRanker {
	return &BalanceRanker{resolver: resolver}
}

// Rank returns the balances annotated with their priority, highest first.
// Equal priorities keep their input order.
func (r *BalanceRanker) Rank(balances []entity.Balance) []entity.RankedBalance {
	ranked := make([]entity.RankedBalance, len(balances))
	for i, b := range balances {
		ranked[i] = entity.RankedBalance{Balance: b, Priority: r.resolver.Priority(b.Chain)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})
	return ranked
}
