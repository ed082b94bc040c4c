package app

import (
	"math/big"
	"strconv"
)

// Helpers for pulling typed values out of the tagged-value parser's
// generic output.

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
	case *big.Int:
		if x.IsInt64() {
			return x.Int64()
		}
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// enumTag extracts the variant name of a contract enum, which decodes
// either as a bare symbol or as a one-element vector holding one.
func enumTag(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		if len(x) > 0 {
			if s, ok := x[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
