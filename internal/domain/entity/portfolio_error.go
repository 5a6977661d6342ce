package entity

// SourceError describes a failure of one balance source entry that did not abort the whole read.
type SourceError struct {
	Source        string `json:"source"`
	Chain         string `json:"chain,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
	Message       string `json:"message"`
}
