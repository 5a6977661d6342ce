package networkdefinition

import (
	"errors"
	"fmt"

	"balance_ranker/internal/domain/entity"
)

// Built-in definitions for the EVM chains that appear in the default priority table.
// Name matches the ranking key, so balances read from these networks rank directly.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:      1,
		Name:         "Ethereum",
		NativeSymbol: "ETH",
		Decimals:     18,
		RPCURL:       "https://ethereum-rpc.publicnode.com",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:      42161,
		Name:         "Arbitrum",
		NativeSymbol: "ETH",
		Decimals:     18,
		RPCURL:       "https://arb1.arbitrum.io/rpc",
	}
)

var builtin = map[string]entity.NetworkDefinition{
	Ethereum.Name: Ethereum,
	Arbitrum.Name: Arbitrum,
}

// Builtin returns the built-in definition for name, if any.
func Builtin(name string) (entity.NetworkDefinition, bool) {
	def, ok := builtin[name]
	return def, ok
}

// Resolve completes configured networks from the built-in table: a configured
// network only needs a name when a built-in of that name exists, and any field
// it does set wins. Networks that are still missing an RPC URL or native symbol
// are reported together.
func Resolve(configured []entity.NetworkDefinition) ([]entity.NetworkDefinition, error) {
	out := make([]entity.NetworkDefinition, 0, len(configured))
	var errs []error
	for _, n := range configured {
		if base, ok := builtin[n.Name]; ok {
			if n.ChainID == 0 {
				n.ChainID = base.ChainID
			}
			if n.NativeSymbol == "" {
				n.NativeSymbol = base.NativeSymbol
			}
			if n.Decimals == 0 {
				n.Decimals = base.Decimals
			}
			if n.RPCURL == "" {
				n.RPCURL = base.RPCURL
			}
		}
		if n.Decimals == 0 {
			n.Decimals = 18
		}
		if n.RPCURL == "" {
			errs = append(errs, fmt.Errorf("network %q: rpcURL is required", n.Name))
			continue
		}
		if n.NativeSymbol == "" {
			errs = append(errs, fmt.Errorf("network %q: nativeSymbol is required", n.Name))
			continue
		}
		out = append(out, n)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
