// Package asset holds the registry of tokens the service understands:
// Stellar Asset Contract ids and classic issuer addresses mapped to
// display metadata and oracle fallback prices.
package asset

import "github.com/shopspring/decimal"

// Stroops are the on-chain fixed-point unit, 10^-7 of a whole token.
const (
	StroopDecimals = 7
	StroopsPerUnit = 10_000_000

	// Peg values use a coarser 10^-4 scale.
	PegDecimals = 4
)

// Asset is the metadata of one known token. Identity is the SAC
// contract id; the classic issuer address is kept for balances keyed
// by issuer.
type Asset struct {
	ContractID string // SAC contract address (C...)
	Issuer     string // classic issuer account (G...), empty for native
	Symbol     string
	Name       string
	Native     bool

	// CoinGeckoID links the token to market data lookups.
	CoinGeckoID string

	// FallbackUSD is the oracle fallback price used when live market
	// data is unavailable.
	FallbackUSD decimal.Decimal
}

// DisplayName returns the human-readable name, falling back to the
// symbol.
func (a *Asset) DisplayName() string {
	if a.Name == "" {
		return a.Symbol
	}
	return a.Name
}
