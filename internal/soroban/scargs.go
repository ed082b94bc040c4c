package soroban

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// Builders for the XDR contract-call arguments the gateway prepares.
// Struct arguments are encoded the way the Soroban SDK does: an ScvMap
// with symbol keys in lexicographic order.

// SymArg builds a symbol argument.
func SymArg(s string) xdr.ScVal {
	sym := xdr.ScSymbol(s)
	return xdr.ScVal{Type: xdr.ScValTypeScvSymbol, Sym: &sym}
}

// U32Arg builds a u32 argument.
func U32Arg(v uint32) xdr.ScVal {
	u := xdr.Uint32(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU32, U32: &u}
}

// U64Arg builds a u64 argument.
func U64Arg(v uint64) xdr.ScVal {
	u := xdr.Uint64(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU64, U64: &u}
}

// BoolArg builds a bool argument.
func BoolArg(v bool) xdr.ScVal {
	return xdr.ScVal{Type: xdr.ScValTypeScvBool, B: &v}
}

// StringArg builds a string argument.
func StringArg(s string) xdr.ScVal {
	str := xdr.ScString(s)
	return xdr.ScVal{Type: xdr.ScValTypeScvString, Str: &str}
}

// VoidArg builds a void argument, also used for None option values.
func VoidArg() xdr.ScVal {
	return xdr.ScVal{Type: xdr.ScValTypeScvVoid}
}

var (
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)
	two64  = new(big.Int).Lsh(big.NewInt(1), 64)
)

// I128Arg builds an i128 argument from an arbitrary-precision value.
// Values outside the i128 range are rejected.
func I128Arg(v *big.Int) (xdr.ScVal, error) {
	if v == nil {
		v = big.NewInt(0)
	}
	if v.BitLen() > 127 {
		return xdr.ScVal{}, fmt.Errorf("value %s overflows i128", v.String())
	}

	// Two's complement split into hi/lo words.
	tmp := new(big.Int).Set(v)
	if tmp.Sign() < 0 {
		tmp.Add(tmp, two128)
	}
	lo := new(big.Int).Mod(tmp, two64).Uint64()
	hi := new(big.Int).Rsh(tmp, 64).Uint64()

	parts := xdr.Int128Parts{
		Hi: xdr.Int64(int64(hi)),
		Lo: xdr.Uint64(lo),
	}
	return xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}, nil
}

// I128FromString builds an i128 argument from a base-10 string.
func I128FromString(s string) (xdr.ScVal, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return xdr.ScVal{}, fmt.Errorf("invalid i128 amount %q", s)
	}
	return I128Arg(v)
}

// AddressArg builds an address argument from a strkey-encoded
// G (account) or C (contract) address.
func AddressArg(addr string) (xdr.ScVal, error) {
	scAddr, err := ScAddressFromString(addr)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &scAddr}, nil
}

// ScAddressFromString decodes a strkey address into its XDR form.
func ScAddressFromString(addr string) (xdr.ScAddress, error) {
	if raw, err := strkey.Decode(strkey.VersionByteContract, addr); err == nil {
		var cid xdr.ContractId
		copy(cid[:], raw)
		return xdr.ScAddress{
			Type:       xdr.ScAddressTypeScAddressTypeContract,
			ContractId: &cid,
		}, nil
	}

	aid, err := xdr.AddressToAccountId(addr)
	if err != nil {
		return xdr.ScAddress{}, fmt.Errorf("invalid stellar address %q: %w", addr, err)
	}
	return xdr.ScAddress{
		Type:      xdr.ScAddressTypeScAddressTypeAccount,
		AccountId: &aid,
	}, nil
}

// VecArg builds a vec argument.
func VecArg(items ...xdr.ScVal) xdr.ScVal {
	vec := xdr.ScVec(items)
	p := &vec
	return xdr.ScVal{Type: xdr.ScValTypeScvVec, Vec: &p}
}

// Field is one named member of a struct argument.
type Field struct {
	Name string
	Val  xdr.ScVal
}

// StructArg builds an ScvMap-encoded contract struct. Keys are sorted
// lexicographically as the host requires.
func StructArg(fields ...Field) xdr.ScVal {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	entries := make(xdr.ScMap, 0, len(sorted))
	for _, f := range sorted {
		entries = append(entries, xdr.ScMapEntry{
			Key: SymArg(f.Name),
			Val: f.Val,
		})
	}
	p := &entries
	return xdr.ScVal{Type: xdr.ScValTypeScvMap, Map: &p}
}
