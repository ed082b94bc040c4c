package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/scval"
)

type fakeReader struct {
	value *scval.Value
	err   error
}

func (f *fakeReader) ReadCall(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error) {
	return f.value, f.err
}

func newTestScanner(reader ContractReader) *Scanner {
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return NewScanner(reader, NewFormatter(log), log)
}

func sym(s string) scval.Value {
	return scval.Value{Kind: scval.KindSymbol, Sym: []byte(s)}
}

func i128(hi, lo string) scval.Value {
	return scval.Value{Kind: scval.KindI128, I128: &scval.Int128Parts{Hi: json.Number(hi), Lo: json.Number(lo)}}
}

func u32(n uint32) scval.Value {
	return scval.Value{Kind: scval.KindU32, U32: &n}
}

// opportunityNode builds a well-formed enhanced opportunity wire value.
func opportunityNode() scval.Value {
	pair := scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("base_asset_symbol"), Val: sym("USDC")},
		{Key: sym("quote_asset_symbol"), Val: sym("USD")},
		{Key: sym("target_peg"), Val: i128("0", "10000")},
		{Key: sym("deviation_threshold_bps"), Val: u32(50)},
	}}
	base := scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("pair"), Val: pair},
		{Key: sym("stablecoin_price"), Val: i128("0", "10050000")},
		{Key: sym("fiat_rate"), Val: i128("0", "10000000")},
		{Key: sym("deviation_bps"), Val: u32(50)},
		{Key: sym("estimated_profit"), Val: i128("0", "1234567")},
		{Key: sym("trade_direction"), Val: sym("BUY")},
	}}
	return scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("base_opportunity"), Val: base},
		{Key: sym("confidence_score"), Val: u32(90)},
		{Key: sym("max_trade_size"), Val: i128("0", "100000000")},
		{Key: sym("venue_recommendations"), Val: scval.Value{Kind: scval.KindVec}},
	}}
}

// malformedNode lacks the pair substructure and must be filtered out.
func malformedNode() scval.Value {
	return scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("confidence_score"), Val: u32(10)},
	}}
}

func TestScanAdvancedFiltersMalformed(t *testing.T) {
	vec := scval.Value{Kind: scval.KindVec, Vec: []scval.Value{opportunityNode(), malformedNode()}}
	s := newTestScanner(&fakeReader{value: &vec})

	result, err := s.ScanAdvanced(context.Background())
	if err != nil {
		t.Fatalf("ScanAdvanced failed: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("count = %d, want 1", result.Count)
	}
	if len(result.Opportunities) != 1 {
		t.Fatalf("opportunities = %d, want 1", len(result.Opportunities))
	}
	if result.Opportunities[0].BaseOpportunity.Pair.BaseAssetSymbol != "USDC" {
		t.Errorf("symbol = %q", result.Opportunities[0].BaseOpportunity.Pair.BaseAssetSymbol)
	}
}

func TestScanAdvancedAbsentReturn(t *testing.T) {
	tests := []struct {
		name  string
		value *scval.Value
	}{
		{"nil return value", nil},
		{"non-vec return value", &scval.Value{Kind: scval.KindBool}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(&fakeReader{value: tt.value})

			result, err := s.ScanAdvanced(context.Background())
			if err != nil {
				t.Fatalf("ScanAdvanced failed: %v", err)
			}
			if result.Count != 0 || len(result.Opportunities) != 0 {
				t.Errorf("result = %+v, want empty", result)
			}
			if result.Opportunities == nil {
				t.Error("opportunities must be an empty slice, not nil")
			}
		})
	}
}

func TestScanAdvancedTransportError(t *testing.T) {
	s := newTestScanner(&fakeReader{err: errors.New("rpc unreachable")})

	if _, err := s.ScanAdvanced(context.Background()); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}

func TestScanBasic(t *testing.T) {
	node := scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("pair"), Val: scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
			{Key: sym("stablecoin_symbol"), Val: sym("EURC")},
			{Key: sym("fiat_symbol"), Val: sym("EUR")},
		}}},
		{Key: sym("stablecoin_price"), Val: i128("0", "10800000")},
		{Key: sym("trade_direction"), Val: sym("SELL")},
	}}
	vec := scval.Value{Kind: scval.KindVec, Vec: []scval.Value{node}}
	s := newTestScanner(&fakeReader{value: &vec})

	result, err := s.ScanBasic(context.Background())
	if err != nil {
		t.Fatalf("ScanBasic failed: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d, want 1", result.Count)
	}
	opp := result.Opportunities[0]
	if opp.Pair.StablecoinSymbol != "EURC" || opp.Pair.FiatSymbol != "EUR" {
		t.Errorf("pair = %+v", opp.Pair)
	}
	if opp.StablecoinPrice != "1.080000" {
		t.Errorf("price = %q", opp.StablecoinPrice)
	}
	if opp.TradeDirection != "SELL" {
		t.Errorf("direction = %q", opp.TradeDirection)
	}
}
