package asset

import "github.com/shopspring/decimal"

// Testnet SAC contract ids.
const (
	ContractXLM  = "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC"
	ContractUSDC = "CBIELTK6YBZJU5UP2WWQEUCYKLPU6AUNZ2BQ4WWFEIE3USCIHMXQDAMA"
	ContractEURC = "CCUUDM434BMZMYWYDITHFXHDMIVTGGD6T2I5UKNX5BSLXLW7HVR4MCGZ"
)

// Testnet classic issuer accounts.
const (
	IssuerUSDC = "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5"
	IssuerEURC = "GB3Q6QDZYTHWT7E5PVS3W7FUT5GVAFC5KSZFFLPU25GO7VTC3NM2ZTVO"
)

// Well-known testnet assets with oracle fallback prices.
var (
	XLM = &Asset{
		ContractID:  ContractXLM,
		Symbol:      "XLM",
		Name:        "Stellar Lumens",
		Native:      true,
		CoinGeckoID: "stellar",
		FallbackUSD: decimal.NewFromFloat(0.12),
	}
	USDC = &Asset{
		ContractID:  ContractUSDC,
		Issuer:      IssuerUSDC,
		Symbol:      "USDC",
		Name:        "USD Coin",
		CoinGeckoID: "usd-coin",
		FallbackUSD: decimal.NewFromInt(1),
	}
	EURC = &Asset{
		ContractID:  ContractEURC,
		Issuer:      IssuerEURC,
		Symbol:      "EURC",
		Name:        "Euro Coin",
		CoinGeckoID: "euro-coin",
		FallbackUSD: decimal.NewFromFloat(1.08),
	}
)

// DefaultRegistry returns a registry pre-populated with the well-known
// testnet assets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(XLM)
	r.Register(USDC)
	r.Register(EURC)
	return r
}
