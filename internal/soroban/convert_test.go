package soroban

import (
	"math/big"
	"testing"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
)

func TestI128ArgSplitsWords(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantHi int64
		wantLo uint64
	}{
		{"zero", "0", 0, 0},
		{"small", "2500000", 0, 2500000},
		{"exactly 2^64", "18446744073709551616", 1, 0},
		{"2^64 plus one", "18446744073709551617", 1, 1},
		{"negative one", "-1", -1, 18446744073709551615},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := new(big.Int).SetString(tt.value, 10)
			arg, err := I128Arg(v)
			if err != nil {
				t.Fatalf("I128Arg(%s): %v", tt.value, err)
			}
			if int64(arg.I128.Hi) != tt.wantHi || uint64(arg.I128.Lo) != tt.wantLo {
				t.Errorf("I128Arg(%s) = hi %d lo %d, want hi %d lo %d",
					tt.value, arg.I128.Hi, arg.I128.Lo, tt.wantHi, tt.wantLo)
			}
		})
	}
}

func TestI128ArgRoundTrip(t *testing.T) {
	values := []string{"0", "1", "18446744073709551616", "-18446744073709551616", "170141183460469231731687303715884105727"}

	for _, s := range values {
		v, _ := new(big.Int).SetString(s, 10)
		arg, err := I128Arg(v)
		if err != nil {
			t.Fatalf("I128Arg(%s): %v", s, err)
		}
		wire := FromXDR(arg)
		got := scval.Parse(&wire)
		bi, ok := got.(*big.Int)
		if !ok || bi.String() != s {
			t.Errorf("round trip %s = %v", s, got)
		}
	}
}

func TestI128ArgOverflow(t *testing.T) {
	v, _ := new(big.Int).SetString("170141183460469231731687303715884105728", 10) // 2^127
	if _, err := I128Arg(v); err == nil {
		t.Error("expected overflow error for 2^127")
	}
}

func TestFromXDRStruct(t *testing.T) {
	profit, err := I128FromString("2500000")
	if err != nil {
		t.Fatalf("I128FromString: %v", err)
	}

	sv := StructArg(
		Field{Name: "estimated_profit", Val: profit},
		Field{Name: "deviation_bps", Val: U32Arg(85)},
		Field{Name: "trade_direction", Val: SymArg("buy_stable")},
	)

	wire := FromXDR(sv)
	got, ok := scval.Parse(&wire).(map[string]any)
	if !ok {
		t.Fatalf("parsed struct is %T", scval.Parse(&wire))
	}
	if got["deviation_bps"] != uint32(85) {
		t.Errorf("deviation_bps = %v", got["deviation_bps"])
	}
	if got["trade_direction"] != "buy_stable" {
		t.Errorf("trade_direction = %v", got["trade_direction"])
	}
	if bi, ok := got["estimated_profit"].(*big.Int); !ok || bi.String() != "2500000" {
		t.Errorf("estimated_profit = %v", got["estimated_profit"])
	}

	// ScvMap keys must be sorted for the host.
	entries := **sv.Map
	for i := 1; i < len(entries); i++ {
		prev := string(*entries[i-1].Key.Sym)
		cur := string(*entries[i].Key.Sym)
		if prev >= cur {
			t.Errorf("map keys out of order: %s before %s", prev, cur)
		}
	}
}

func TestFromXDRContractAddress(t *testing.T) {
	const addr = "CCKGFSM4JTAD2DULINQVO4YVUJVO6OJS7AMRS56DZMERF5W2LCD5GVYD"

	arg, err := AddressArg(addr)
	if err != nil {
		t.Fatalf("AddressArg: %v", err)
	}

	wire := FromXDR(arg)
	got, ok := scval.Parse(&wire).(string)
	if !ok {
		t.Fatalf("parsed address is %T", scval.Parse(&wire))
	}
	if len(got) != len("CONTRACT_")+64 {
		t.Errorf("formatted address %q has unexpected length", got)
	}
	if got[:9] != "CONTRACT_" {
		t.Errorf("formatted address %q missing CONTRACT_ prefix", got)
	}
}

func TestFromXDRVoidOption(t *testing.T) {
	wire := FromXDR(VoidArg())
	if got := scval.Parse(&wire); got != nil {
		t.Errorf("void parsed to %v, want nil", got)
	}
}

func TestFromXDRUnknownType(t *testing.T) {
	d := xdr.Duration(99)
	sv := xdr.ScVal{Type: xdr.ScValTypeScvDuration, Duration: &d}

	wire := FromXDR(sv)
	if wire.Kind == scval.KindVec || wire.Kind == scval.KindMap {
		t.Fatalf("unexpected kind %s", wire.Kind)
	}
	// Must degrade without panicking, value content is best-effort.
	_ = scval.Parse(&wire)
}
