// Package fixedpoint converts on-chain fixed-point integer amounts into
// display strings.
package fixedpoint

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Display precision for normalized amounts.
const DisplayDecimals = 6

// ZeroAmount is the normalized form of zero or unusable input.
const ZeroAmount = "0.000000"

// Normalize divides a raw integer amount string by 10^decimals and
// renders it with six decimal places. Empty, zero or non-numeric input
// yields ZeroAmount. It never fails.
func Normalize(raw string, decimals int32) string {
	if raw == "" {
		return ZeroAmount
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsZero() {
		return ZeroAmount
	}

	return d.Shift(-decimals).StringFixed(DisplayDecimals)
}

// NormalizeBig is Normalize for amounts already held as big integers,
// the common case after tagged-value decoding.
func NormalizeBig(raw *big.Int, decimals int32) string {
	if raw == nil || raw.Sign() == 0 {
		return ZeroAmount
	}

	return decimal.NewFromBigInt(raw, -decimals).StringFixed(DisplayDecimals)
}

// NormalizeAny accepts the loose value shapes produced by the tagged
// value parser (big ints, unsigned ints, numeric strings) and
// normalizes whichever it got. Unusable shapes yield ZeroAmount.
func NormalizeAny(v any, decimals int32) string {
	switch x := v.(type) {
	case nil:
		return ZeroAmount
	case *big.Int:
		return NormalizeBig(x, decimals)
	case string:
		return Normalize(x, decimals)
	case uint32:
		return NormalizeBig(new(big.Int).SetUint64(uint64(x)), decimals)
	case uint64:
		return NormalizeBig(new(big.Int).SetUint64(x), decimals)
	case int64:
		return NormalizeBig(big.NewInt(x), decimals)
	case float64:
		return decimal.NewFromFloat(x).Shift(-decimals).StringFixed(DisplayDecimals)
	default:
		return ZeroAmount
	}
}
