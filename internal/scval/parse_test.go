package scval

import (
	"encoding/json"
	"math/big"
	"reflect"
	"testing"
)

func u32p(v uint32) *uint32 { return &v }
func boolp(v bool) *bool    { return &v }
func strp(v string) *string { return &v }

func i128(hi, lo string) *Int128Parts {
	return &Int128Parts{Hi: json.Number(hi), Lo: json.Number(lo)}
}

func TestParseI128(t *testing.T) {
	tests := []struct {
		name string
		hi   string
		lo   string
		want string
	}{
		{"zero", "0", "0", "0"},
		{"low word only", "0", "12345", "12345"},
		{"hi one lo zero", "1", "0", "18446744073709551616"},
		{"hi and lo", "1", "1", "18446744073709551617"},
		{"max low word", "0", "18446744073709551615", "18446744073709551615"},
		{"negative hi", "-1", "0", "-18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(&Value{Kind: KindI128, I128: i128(tt.hi, tt.lo)})
			bi, ok := got.(*big.Int)
			if !ok {
				t.Fatalf("Parse i128 returned %T, want *big.Int", got)
			}
			if bi.String() != tt.want {
				t.Errorf("i128(hi=%s, lo=%s) = %s, want %s", tt.hi, tt.lo, bi.String(), tt.want)
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		addr *Address
		want string
	}{
		{
			name: "contract address",
			addr: &Address{Type: AddressTypeContract, Bytes: []byte{0xAB, 0xCD}},
			want: "CONTRACT_ABCD",
		},
		{
			name: "account address",
			addr: &Address{Type: AddressTypeAccount, Bytes: []byte{0x00, 0xFF}},
			want: "ACCOUNT_00FF",
		},
		{
			name: "unrecognized type",
			addr: &Address{Type: "muxed", Bytes: []byte{0x01}},
			want: UnknownAddress,
		},
		{
			name: "missing payload",
			addr: nil,
			want: UnknownAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(&Value{Kind: KindAddress, Addr: tt.addr})
			if got != tt.want {
				t.Errorf("address = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		in   *Value
		want any
	}{
		{"symbol utf8", &Value{Kind: KindSymbol, Sym: []byte("buy_stable")}, "buy_stable"},
		{"symbol multibyte", &Value{Kind: KindSymbol, Sym: []byte("pég")}, "pég"},
		{"u32", &Value{Kind: KindU32, U32: u32p(250)}, uint32(250)},
		{"u32 missing payload", &Value{Kind: KindU32}, uint32(0)},
		{"u64 unboxed", &Value{Kind: KindU64, U64: &U64Box{Value: 1700000000}}, uint64(1700000000)},
		{"u64 missing payload", &Value{Kind: KindU64}, uint64(0)},
		{"bool true", &Value{Kind: KindBool, B: boolp(true)}, true},
		{"bool missing payload", &Value{Kind: KindBool}, false},
		{"string", &Value{Kind: KindString, Str: strp("hello")}, "hello"},
		{"void", &Value{Kind: KindVoid}, nil},
		{"nil node", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParseU64Boxing(t *testing.T) {
	payloads := []string{
		`{"kind":"u64","u64":1234}`,
		`{"kind":"u64","u64":"1234"}`,
		`{"kind":"u64","u64":{"value":1234}}`,
		`{"kind":"u64","u64":{"value":"1234"}}`,
	}

	for _, payload := range payloads {
		v, err := Decode(json.RawMessage(payload))
		if err != nil {
			t.Fatalf("Decode(%s): %v", payload, err)
		}
		got := Parse(v)
		if got != uint64(1234) {
			t.Errorf("Parse(%s) = %v, want 1234", payload, got)
		}
	}
}

func TestParseMap(t *testing.T) {
	in := &Value{Kind: KindMap, Map: []Entry{
		{
			Key: Value{Kind: KindSymbol, Sym: []byte("deviation_bps")},
			Val: Value{Kind: KindU32, U32: u32p(85)},
		},
		{
			Key: Value{Kind: KindSymbol, Sym: []byte("estimated_profit")},
			Val: Value{Kind: KindI128, I128: i128("0", "2500000")},
		},
		{
			// non-string key is skipped, the rest of the map survives
			Key: Value{Kind: KindU32, U32: u32p(7)},
			Val: Value{Kind: KindBool, B: boolp(true)},
		},
	}}

	got, ok := Parse(in).(map[string]any)
	if !ok {
		t.Fatalf("Parse map returned %T, want map[string]any", Parse(in))
	}
	if len(got) != 2 {
		t.Fatalf("map has %d entries, want 2", len(got))
	}
	if got["deviation_bps"] != uint32(85) {
		t.Errorf("deviation_bps = %v, want 85", got["deviation_bps"])
	}
	profit, ok := got["estimated_profit"].(*big.Int)
	if !ok || profit.String() != "2500000" {
		t.Errorf("estimated_profit = %v, want 2500000", got["estimated_profit"])
	}
}

func TestParseVecNesting(t *testing.T) {
	in := &Value{Kind: KindVec, Vec: []Value{
		{Kind: KindU32, U32: u32p(1)},
		{Kind: KindVec, Vec: []Value{
			{Kind: KindSymbol, Sym: []byte("nested")},
		}},
	}}

	got, ok := Parse(in).([]any)
	if !ok || len(got) != 2 {
		t.Fatalf("Parse vec = %v", Parse(in))
	}
	inner, ok := got[1].([]any)
	if !ok || len(inner) != 1 || inner[0] != "nested" {
		t.Errorf("nested vec = %v, want [nested]", got[1])
	}
}

func TestParseUnknownKind(t *testing.T) {
	withRaw, err := Decode(json.RawMessage(`{"kind":"ledgerkey","raw":{"seq":42}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := Parse(withRaw)
	m, ok := got.(map[string]any)
	if !ok || m["seq"] != float64(42) {
		t.Errorf("unknown kind with raw payload = %v, want raw map", got)
	}

	if got := Parse(&Value{Kind: "ledgerkey"}); got != nil {
		t.Errorf("unknown kind without payload = %v, want nil", got)
	}
}

func TestParseVecHelper(t *testing.T) {
	if got := ParseVec(nil); len(got) != 0 {
		t.Errorf("ParseVec(nil) = %v, want empty", got)
	}
	if got := ParseVec(&Value{Kind: KindU32, U32: u32p(5)}); len(got) != 0 {
		t.Errorf("ParseVec(non-vec) = %v, want empty", got)
	}
	got := ParseVec(&Value{Kind: KindVec, Vec: []Value{{Kind: KindBool, B: boolp(true)}}})
	if len(got) != 1 || got[0] != true {
		t.Errorf("ParseVec(vec) = %v, want [true]", got)
	}
}

func TestDecodeAbsent(t *testing.T) {
	for _, payload := range []string{"", "null"} {
		v, err := Decode(json.RawMessage(payload))
		if err != nil {
			t.Fatalf("Decode(%q): %v", payload, err)
		}
		if v != nil {
			t.Errorf("Decode(%q) = %v, want nil", payload, v)
		}
	}
}
