package port

import (
	"context"

	"balance_ranker/internal/domain/entity"
)

// BalanceSource supplies wallet balances. Partial failures are reported as
// SourceErrors next to whatever balances could be read; err is reserved for
// failures that leave no usable result.
type BalanceSource interface {
	Name() string
	Balances(ctx context.Context) ([]entity.Balance, []entity.SourceError, error)
}
