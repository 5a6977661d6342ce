package ranking

import (
	"fmt"
	"strings"

	"balance_ranker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// EligibilityPolicy decides from the amount alone whether a balance may be displayed.
type EligibilityPolicy func(amount decimal.Decimal) bool

// Policy names accepted by PolicyByName.
const (
	PolicyNonPositive = "non_positive"
	PolicyPositive    = "positive"
)

// NonPositiveAmount keeps amounts <= 0. It is the default policy.
func NonPositiveAmount(amount decimal.Decimal) bool {
	return amount.Sign() <= 0
}

// PositiveAmount keeps amounts > 0.
func PositiveAmount(amount decimal.Decimal) bool {
	return amount.Sign() > 0
}

// PolicyByName resolves a configured policy name. An empty name selects the default.
func PolicyByName(name string) (EligibilityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyNonPositive:
		return NonPositiveAmount, nil
	case PolicyPositive:
		return PositiveAmount, nil
	default:
		return nil, fmt.Errorf("unknown eligibility policy %q (want %q or %q)", name, PolicyNonPositive, PolicyPositive)
	}
}

// BalanceFilter selects the balances eligible for display.
type BalanceFilter struct {
	resolver *PriorityResolver
	eligible EligibilityPolicy
}

// NewBalanceFilter returns a filter; a nil policy falls back to NonPositiveAmount.
func NewBalanceFilter(resolver *PriorityResolver, eligible EligibilityPolicy) *BalanceFilter {
	if eligible == nil {
		eligible = NonPositiveAmount
	}
	return &BalanceFilter{resolver: resolver, eligible: eligible}
}

// Filter keeps, in input order, every balance on a known chain whose amount passes the policy.
func (f *BalanceFilter) Filter(balances []entity.Balance) []entity.Balance {
	kept := make([]entity.Balance, 0, len(balances))
	for _, b := range balances {
		if f.resolver.Priority(b.Chain) > UnknownPriority && f.eligible(b.Amount) {
			kept = append(kept, b)
		}
	}
	return kept
}
