package provider

import (
	"context"
	"errors"
	"testing"

	"balance_ranker/internal/domain/entity"
	"balance_ranker/internal/pkg/logger"
	"balance_ranker/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name     string
	balances []entity.Balance
	problems []entity.SourceError
	err      error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Balances(context.Context) ([]entity.Balance, []entity.SourceError, error) {
	return s.balances, s.problems, s.err
}

func bal(chain, currency, amount string) entity.Balance {
	return entity.Balance{Chain: chain, Currency: currency, Amount: decimal.RequireFromString(amount)}
}

func TestBalanceProvider_ConcatenatesInOrder(t *testing.T) {
	file := &stubSource{name: "file", balances: []entity.Balance{bal("Osmosis", "OSMO", "-1"), bal("Neo", "NEO", "0")}}
	evm := &stubSource{
		name:     "evm-test-order",
		balances: []entity.Balance{bal("Ethereum", "ETH", "2")},
		problems: []entity.SourceError{{Source: "evm-test-order", Chain: "Arbitrum", Message: "timeout"}},
	}
	before := testutil.ToFloat64(metrics.BalanceSourceErrors.WithLabelValues("evm-test-order"))

	p := NewBalanceProvider(logger.NewNop(), file, evm)
	assert.Equal(t, "composite", p.Name())

	balances, problems, err := p.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 3)
	assert.Equal(t, []string{"Osmosis", "Neo", "Ethereum"}, []string{balances[0].Chain, balances[1].Chain, balances[2].Chain})
	require.Len(t, problems, 1)
	assert.Equal(t, "Arbitrum", problems[0].Chain)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.BalanceSourceErrors.WithLabelValues("evm-test-order")))
}

func TestBalanceProvider_PartialFailure(t *testing.T) {
	file := &stubSource{name: "file-test-partial", err: errors.New("open balances.yml: no such file")}
	evm := &stubSource{name: "evm", balances: []entity.Balance{bal("Ethereum", "ETH", "2")}}

	balances, problems, err := NewBalanceProvider(logger.NewNop(), file, evm).Balances(context.Background())
	require.NoError(t, err)
	assert.Len(t, balances, 1)
	require.Len(t, problems, 1)
	assert.Equal(t, "file-test-partial", problems[0].Source)
	assert.Contains(t, problems[0].Message, "no such file")
}

func TestBalanceProvider_AllFailed(t *testing.T) {
	boom := errors.New("boom")
	p := NewBalanceProvider(logger.NewNop(),
		&stubSource{name: "a", err: boom},
		&stubSource{name: "b", err: errors.New("bang")},
	)

	_, _, err := p.Balances(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "all balance sources failed")
}

func TestBalanceProvider_NoSources(t *testing.T) {
	balances, problems, err := NewBalanceProvider(logger.NewNop()).Balances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, balances)
	assert.Empty(t, problems)
}
