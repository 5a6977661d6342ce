package ranking

// UnknownPriority is returned for chains outside the configured table. Balances on
// such chains never pass the filter.
const UnknownPriority = -99

// DefaultPriorities returns a fresh copy of the stock chain ranking.
func DefaultPriorities() map[string]int {
	return map[string]int{
		"Osmosis":  100,
		"Ethereum": 50,
		"Arbitrum": 30,
		"Zilliqa":  20,
		"Neo":      20,
	}
}

// PriorityResolver maps a chain identifier to its display rank; higher sorts first.
type PriorityResolver struct {
	priorities map[string]int
}

// NewPriorityResolver copies priorities so later changes to the map do not leak in.
// A nil map yields a resolver that knows no chains.
func NewPriorityResolver(priorities map[string]int) *PriorityResolver {
	copied := make(map[string]int, len(priorities))
	for chain, rank := range priorities {
		copied[chain] = rank
	}
	return &PriorityResolver{priorities: copied}
}

// Priority returns the rank of chain, or UnknownPriority.
func (r *PriorityResolver) Priority(chain string) int {
	if rank, ok := r.priorities[chain]; ok {
		return rank
	}
	return UnknownPriority
}
