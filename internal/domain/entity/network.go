package entity

// NetworkDefinition describes an EVM network whose native balances can be read.
// Name doubles as the chain identifier used for ranking (e.g. "Ethereum").
type NetworkDefinition struct {
	ChainID      uint64 `json:"chainId" yaml:"chainID"`
	Name         string `json:"name" yaml:"name"`
	NativeSymbol string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals     int32  `json:"decimals" yaml:"decimals"`
	RPCURL       string `json:"rpcUrl" yaml:"rpcURL"`
}
