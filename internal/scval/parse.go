package scval

import (
	"encoding/json"
	"math/big"
)

// Parse converts a wire node into a plain Go value:
//
//	vec     -> []any
//	map     -> map[string]any (non-string keys skipped)
//	symbol  -> string (UTF-8 payload)
//	u32     -> uint32
//	u64     -> uint64 (unboxed)
//	i128    -> *big.Int (hi*2^64 + lo)
//	bool    -> bool
//	address -> formatted string
//	void    -> nil
//
// Unknown kinds yield their raw payload when present, nil otherwise.
// Parse never panics and never returns an error; malformed input
// degrades to zero values so one bad element cannot take down a whole
// response.
func Parse(v *Value) any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindVec:
		out := make([]any, 0, len(v.Vec))
		for i := range v.Vec {
			out = append(out, Parse(&v.Vec[i]))
		}
		return out

	case KindMap:
		out := make(map[string]any, len(v.Map))
		for i := range v.Map {
			key, ok := Parse(&v.Map[i].Key).(string)
			if !ok {
				continue
			}
			out[key] = Parse(&v.Map[i].Val)
		}
		return out

	case KindSymbol:
		return string(v.Sym)

	case KindU32:
		if v.U32 == nil {
			return uint32(0)
		}
		return *v.U32

	case KindU64:
		if v.U64 == nil {
			return uint64(0)
		}
		return v.U64.Value

	case KindI128:
		if v.I128 == nil {
			return big.NewInt(0)
		}
		return v.I128.BigInt()

	case KindBool:
		if v.B == nil {
			return false
		}
		return *v.B

	case KindAddress:
		return v.Addr.Format()

	case KindString:
		if v.Str == nil {
			return ""
		}
		return *v.Str

	case KindBytes:
		return v.Bytes

	case KindVoid:
		return nil

	default:
		if len(v.Raw) > 0 {
			var raw any
			if err := json.Unmarshal(v.Raw, &raw); err == nil {
				return raw
			}
			return string(v.Raw)
		}
		return nil
	}
}

// ParseVec parses a node expected to be a vector. Nil, non-vec or
// malformed input yields an empty slice, matching the degrade-to-empty
// contract of list-returning endpoints.
func ParseVec(v *Value) []any {
	if v == nil || v.Kind != KindVec {
		return []any{}
	}
	out, ok := Parse(v).([]any)
	if !ok {
		return []any{}
	}
	return out
}

// Decode unmarshals a raw simulation return payload into a wire node.
// A nil result with a nil error means the payload was absent.
func Decode(raw json.RawMessage) (*Value, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
