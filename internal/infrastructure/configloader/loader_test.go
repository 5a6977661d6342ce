package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"balance_ranker/internal/app/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultPriceFeedURL, cfg.PriceFeed.URL)
	assert.Equal(t, 60, cfg.PriceFeed.CacheTTLSeconds)
	assert.Equal(t, ranking.DefaultPriorities(), cfg.Ranking.Priorities)
	assert.Equal(t, ranking.PolicyNonPositive, cfg.Ranking.Eligibility)
	assert.Equal(t, 4, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, "/swagger", cfg.Swagger.Path)
}

func TestParseFullConfig(t *testing.T) {
	raw := `
server:
  port: ":9090"
logging:
  level: debug
priceFeed:
  url: static
  static:
    ETH: "1645.93"
    USDC: "1"
ranking:
  eligibility: positive
  priorities:
    Ethereum: 10
    Bitcoin: 5
balances:
  file: data/balances.yml
networks:
  - name: Ethereum
    chainID: 1
    nativeSymbol: ETH
    rpcURL: https://ethereum-rpc.publicnode.com
wallets:
  - "0x0000000000000000000000000000000000000001"
`
	cfg, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, map[string]int{"Ethereum": 10, "Bitcoin": 5}, cfg.Ranking.Priorities)
	assert.Equal(t, "positive", cfg.Ranking.Eligibility)
	assert.Equal(t, "1645.93", cfg.PriceFeed.Static["ETH"])
	require.Len(t, cfg.Networks, 1)
	assert.Equal(t, "ETH", cfg.Networks[0].NativeSymbol)
	assert.Equal(t, uint64(1), cfg.Networks[0].ChainID)
	assert.Equal(t, "data/balances.yml", cfg.Balances.File)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	raw := `
priceFeed:
  url: static
ranking:
  eligibility: all
networks:
  - chainID: 1
wallets:
  - not-an-address
`
	_, err := Parse([]byte(raw))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "ranking.eligibility")
	assert.Contains(t, msg, "priceFeed.static")
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "not a hex address")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/ranker.yml")
	assert.Equal(t, "/etc/ranker.yml", PathFromEnv())

	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultConfigPath, PathFromEnv())
}
