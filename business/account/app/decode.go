package app

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/stellar/go/strkey"
)

// Helpers for pulling typed values out of the tagged-value parser's
// generic output. Missing or unusable fields degrade to zero values.

func rawAmount(v any) string {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	}
	return "0"
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float64:
		return int64(x)
	case *big.Int:
		if x.IsInt64() {
			return x.Int64()
		}
	case string:
		if n, err := strconv.ParseInt(x, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// canonicalToken maps a balance-map key back to its strkey form. The
// decoder renders addresses as CONTRACT_<HEX> or ACCOUNT_<HEX>; the
// asset registry and the rest of the API speak strkey C/G addresses.
// Keys that are not 32-byte hex payloads pass through unchanged.
func canonicalToken(key string) string {
	if raw, ok := addressPayload(key, "CONTRACT_"); ok {
		if s, err := strkey.Encode(strkey.VersionByteContract, raw); err == nil {
			return s
		}
	}
	if raw, ok := addressPayload(key, "ACCOUNT_"); ok {
		if s, err := strkey.Encode(strkey.VersionByteAccountID, raw); err == nil {
			return s
		}
	}
	return key
}

func addressPayload(key, prefix string) ([]byte, bool) {
	if !strings.HasPrefix(key, prefix) {
		return nil, false
	}
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimPrefix(key, prefix)))
	if err != nil || len(raw) != 32 {
		return nil, false
	}
	return raw, true
}
