// Package scval decodes Soroban contract values (SCV) from the tagged
// wire representation returned by transaction simulation into plain Go
// values suitable for JSON responses.
package scval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Kind discriminates the tagged union.
type Kind string

// Wire kinds understood by the parser. Anything else degrades to the
// raw payload.
const (
	KindVec     Kind = "vec"
	KindMap     Kind = "map"
	KindSymbol  Kind = "symbol"
	KindU32     Kind = "u32"
	KindU64     Kind = "u64"
	KindI128    Kind = "i128"
	KindBool    Kind = "bool"
	KindAddress Kind = "address"
	KindString  Kind = "string"
	KindBytes   Kind = "bytes"
	KindVoid    Kind = "void"
)

// UnknownAddress is returned for address payloads whose type the
// parser does not recognize.
const UnknownAddress = "UNKNOWN_ADDRESS"

// Value is one node of the tagged wire tree. Exactly one payload field
// is populated, selected by Kind. Unknown kinds keep their payload in
// Raw.
type Value struct {
	Kind  Kind            `json:"kind"`
	Vec   []Value         `json:"vec,omitempty"`
	Map   []Entry         `json:"map,omitempty"`
	Sym   []byte          `json:"symbol,omitempty"`
	U32   *uint32         `json:"u32,omitempty"`
	U64   *U64Box         `json:"u64,omitempty"`
	I128  *Int128Parts    `json:"i128,omitempty"`
	B     *bool           `json:"bool,omitempty"`
	Addr  *Address        `json:"address,omitempty"`
	Str   *string         `json:"string,omitempty"`
	Bytes []byte          `json:"bytes,omitempty"`
	Raw   json.RawMessage `json:"raw,omitempty"`
}

// Entry is one key/value pair of a map node.
type Entry struct {
	Key Value `json:"key"`
	Val Value `json:"val"`
}

// U64Box holds a u64 payload that may arrive either as a bare number
// (possibly quoted, since 64-bit values overflow JSON number precision)
// or boxed one level as {"value": N}.
type U64Box struct {
	Value uint64
}

type u64Wrapper struct {
	Value json.Number `json:"value"`
}

// UnmarshalJSON accepts N, "N" and {"value": N} shapes.
func (b *U64Box) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		b.Value = 0
		return nil
	}

	if data[0] == '{' {
		var w u64Wrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		return b.setFromString(w.Value.String())
	}

	s := string(data)
	if data[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return err
		}
	}
	return b.setFromString(s)
}

// MarshalJSON renders the unboxed number as a quoted string.
func (b U64Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(b.Value, 10))
}

func (b *U64Box) setFromString(s string) error {
	if s == "" {
		b.Value = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("scval: u64 payload %q: %w", s, err)
	}
	b.Value = v
	return nil
}

// Int128Parts carries a signed 128-bit integer split into a signed
// high word and an unsigned low word. Both halves are quoted on the
// wire to survive JSON number precision.
type Int128Parts struct {
	Hi json.Number `json:"hi"`
	Lo json.Number `json:"lo"`
}

var two64 = new(big.Int).Lsh(big.NewInt(1), 64)

// BigInt reconstructs hi*2^64 + lo exactly. Unparseable halves count
// as zero.
func (p Int128Parts) BigInt() *big.Int {
	hi := new(big.Int)
	if _, ok := hi.SetString(p.Hi.String(), 10); !ok {
		hi.SetInt64(0)
	}
	lo := new(big.Int)
	if _, ok := lo.SetString(p.Lo.String(), 10); !ok {
		lo.SetInt64(0)
	}

	out := new(big.Int).Mul(hi, two64)
	return out.Add(out, lo)
}

// Address payload types.
const (
	AddressTypeContract = "contract"
	AddressTypeAccount  = "account"
)

// Address is the raw address payload of an address node.
type Address struct {
	Type  string `json:"type"`
	Bytes []byte `json:"bytes"`
}

// Format renders the display form used throughout the API:
// CONTRACT_<HEX> or ACCOUNT_<HEX> with uppercase hex, or the
// UnknownAddress sentinel for unrecognized types.
func (a *Address) Format() string {
	if a == nil {
		return UnknownAddress
	}

	switch a.Type {
	case AddressTypeContract:
		return "CONTRACT_" + strings.ToUpper(fmt.Sprintf("%x", a.Bytes))
	case AddressTypeAccount:
		return "ACCOUNT_" + strings.ToUpper(fmt.Sprintf("%x", a.Bytes))
	default:
		return UnknownAddress
	}
}
