package soroban

import (
	"encoding/json"
	"strconv"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
)

// DecodeReturnValue unmarshals a base64 XDR ScVal, as found in
// simulation results, into the scval wire tree. An empty payload means
// the call returned nothing.
func DecodeReturnValue(b64 string) (*scval.Value, error) {
	if b64 == "" {
		return nil, nil
	}
	var sv xdr.ScVal
	if err := xdr.SafeUnmarshalBase64(b64, &sv); err != nil {
		return nil, err
	}
	v := FromXDR(sv)
	return &v, nil
}

// FromXDR converts an XDR contract value into the wire tree the parser
// consumes. Value types with no wire equivalent keep a JSON rendering
// of whatever payload they carry under Raw.
func FromXDR(sv xdr.ScVal) scval.Value {
	switch sv.Type {
	case xdr.ScValTypeScvVec:
		out := scval.Value{Kind: scval.KindVec}
		if sv.Vec != nil && *sv.Vec != nil {
			vec := **sv.Vec
			out.Vec = make([]scval.Value, 0, len(vec))
			for _, item := range vec {
				out.Vec = append(out.Vec, FromXDR(item))
			}
		}
		return out

	case xdr.ScValTypeScvMap:
		out := scval.Value{Kind: scval.KindMap}
		if sv.Map != nil && *sv.Map != nil {
			entries := **sv.Map
			out.Map = make([]scval.Entry, 0, len(entries))
			for _, e := range entries {
				out.Map = append(out.Map, scval.Entry{
					Key: FromXDR(e.Key),
					Val: FromXDR(e.Val),
				})
			}
		}
		return out

	case xdr.ScValTypeScvSymbol:
		out := scval.Value{Kind: scval.KindSymbol}
		if sv.Sym != nil {
			out.Sym = []byte(*sv.Sym)
		}
		return out

	case xdr.ScValTypeScvU32:
		out := scval.Value{Kind: scval.KindU32}
		if sv.U32 != nil {
			u := uint32(*sv.U32)
			out.U32 = &u
		}
		return out

	case xdr.ScValTypeScvU64:
		out := scval.Value{Kind: scval.KindU64}
		if sv.U64 != nil {
			out.U64 = &scval.U64Box{Value: uint64(*sv.U64)}
		}
		return out

	case xdr.ScValTypeScvI128:
		out := scval.Value{Kind: scval.KindI128}
		if sv.I128 != nil {
			out.I128 = &scval.Int128Parts{
				Hi: json.Number(strconv.FormatInt(int64(sv.I128.Hi), 10)),
				Lo: json.Number(strconv.FormatUint(uint64(sv.I128.Lo), 10)),
			}
		}
		return out

	case xdr.ScValTypeScvBool:
		out := scval.Value{Kind: scval.KindBool}
		if sv.B != nil {
			b := *sv.B
			out.B = &b
		}
		return out

	case xdr.ScValTypeScvAddress:
		out := scval.Value{Kind: scval.KindAddress}
		if sv.Address != nil {
			out.Addr = addressFromXDR(*sv.Address)
		}
		return out

	case xdr.ScValTypeScvString:
		out := scval.Value{Kind: scval.KindString}
		if sv.Str != nil {
			s := string(*sv.Str)
			out.Str = &s
		}
		return out

	case xdr.ScValTypeScvBytes:
		out := scval.Value{Kind: scval.KindBytes}
		if sv.Bytes != nil {
			out.Bytes = []byte(*sv.Bytes)
		}
		return out

	case xdr.ScValTypeScvVoid:
		return scval.Value{Kind: scval.KindVoid}

	default:
		out := scval.Value{Kind: scval.Kind(sv.Type.String())}
		if raw, err := json.Marshal(sv); err == nil {
			out.Raw = raw
		}
		return out
	}
}

func addressFromXDR(addr xdr.ScAddress) *scval.Address {
	switch addr.Type {
	case xdr.ScAddressTypeScAddressTypeContract:
		if addr.ContractId == nil {
			return &scval.Address{Type: scval.AddressTypeContract}
		}
		return &scval.Address{
			Type:  scval.AddressTypeContract,
			Bytes: addr.ContractId[:],
		}
	case xdr.ScAddressTypeScAddressTypeAccount:
		out := &scval.Address{Type: scval.AddressTypeAccount}
		if addr.AccountId != nil && addr.AccountId.Ed25519 != nil {
			out.Bytes = addr.AccountId.Ed25519[:]
		}
		return out
	default:
		return &scval.Address{Type: addr.Type.String()}
	}
}
