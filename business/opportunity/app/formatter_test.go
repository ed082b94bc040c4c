package app

import (
	"context"
	"io"
	"math/big"
	"reflect"
	"testing"

	"github.com/stablearb/arbgate/internal/logger"
)

func newTestFormatter() *Formatter {
	return NewFormatter(logger.New(io.Discard, logger.LevelError, "test", nil))
}

func wellFormedElement() map[string]any {
	return map[string]any{
		"base_opportunity": map[string]any{
			"pair": map[string]any{
				"base_asset_symbol":       "USDC",
				"base_asset_address":      "CONTRACT_ABCD",
				"quote_asset_symbol":      []any{float64('U'), float64('S'), float64('D')},
				"quote_asset_address":     "",
				"target_peg":              big.NewInt(10000),
				"deviation_threshold_bps": uint32(50),
			},
			"stablecoin_price": big.NewInt(10_050_000),
			"fiat_rate":        big.NewInt(10_000_000),
			"deviation_bps":    uint32(50),
			"estimated_profit": big.NewInt(1_234_567),
			"trade_direction":  map[string]any{"type": "Buffer", "data": []any{float64('B'), float64('U'), float64('Y')}},
			"timestamp":        uint64(1700000000),
		},
		"twap_price":       big.NewInt(10_040_000),
		"confidence_score": uint32(87),
		"max_trade_size":   big.NewInt(100_000_000),
		"venue_recommendations": []any{
			map[string]any{
				"address":             "CONTRACT_1234",
				"name":                "SDEX",
				"enabled":             true,
				"fee_bps":             uint32(30),
				"liquidity_threshold": big.NewInt(50_000_000),
			},
		},
	}
}

func TestFormatEnhanced(t *testing.T) {
	f := newTestFormatter()
	ctx := context.Background()

	opp := f.FormatEnhanced(ctx, wellFormedElement())
	if opp == nil {
		t.Fatal("FormatEnhanced returned nil for well-formed input")
	}

	base := opp.BaseOpportunity
	if base.Pair.BaseAssetSymbol != "USDC" {
		t.Errorf("base symbol = %q", base.Pair.BaseAssetSymbol)
	}
	if base.Pair.QuoteAssetSymbol != "USD" {
		t.Errorf("quote symbol = %q, want USD from byte list", base.Pair.QuoteAssetSymbol)
	}
	if base.Pair.TargetPeg != "1.000000" {
		t.Errorf("target_peg = %q, want 1.000000", base.Pair.TargetPeg)
	}
	if base.StablecoinPrice != "1.005000" {
		t.Errorf("stablecoin_price = %q, want 1.005000", base.StablecoinPrice)
	}
	if base.TradeDirection != "BUY" {
		t.Errorf("trade_direction = %q, want BUY from Buffer shape", base.TradeDirection)
	}
	if base.DeviationBps != 50 {
		t.Errorf("deviation_bps = %d", base.DeviationBps)
	}
	if base.Timestamp != 1700000000 {
		t.Errorf("timestamp = %d", base.Timestamp)
	}
	if opp.TwapPrice == nil || *opp.TwapPrice != "1.004000" {
		t.Errorf("twap_price = %v, want 1.004000", opp.TwapPrice)
	}
	if opp.MaxTradeSize != "10.000000" {
		t.Errorf("max_trade_size = %q, want 10.000000", opp.MaxTradeSize)
	}
	if len(opp.VenueRecommendations) != 1 {
		t.Fatalf("venues = %d, want 1", len(opp.VenueRecommendations))
	}
	venue := opp.VenueRecommendations[0]
	if venue.Name != "SDEX" || venue.FeeBps != 30 || !venue.Enabled {
		t.Errorf("venue = %+v", venue)
	}
	if venue.LiquidityThreshold != "5.000000" {
		t.Errorf("liquidity_threshold = %q", venue.LiquidityThreshold)
	}
}

func TestFormatEnhancedIdempotent(t *testing.T) {
	f := newTestFormatter()
	ctx := context.Background()
	element := wellFormedElement()

	first := f.FormatEnhanced(ctx, element)
	second := f.FormatEnhanced(ctx, element)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("formatting is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestFormatEnhancedMissingPair(t *testing.T) {
	f := newTestFormatter()
	ctx := context.Background()

	tests := []struct {
		name  string
		input any
	}{
		{"nil input", nil},
		{"non-map input", []any{"x"}},
		{"empty map", map[string]any{}},
		{"base without pair", map[string]any{
			"base_opportunity": map[string]any{"deviation_bps": uint32(10)},
		}},
		{"pair wrong shape", map[string]any{
			"base_opportunity": map[string]any{"pair": "not a map"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatEnhanced(ctx, tt.input); got != nil {
				t.Errorf("FormatEnhanced(%v) = %+v, want nil", tt.input, got)
			}
		})
	}
}

func TestFormatEnhancedMissingVenues(t *testing.T) {
	f := newTestFormatter()

	element := wellFormedElement()
	delete(element, "venue_recommendations")
	delete(element, "twap_price")

	opp := f.FormatEnhanced(context.Background(), element)
	if opp == nil {
		t.Fatal("FormatEnhanced returned nil")
	}
	if opp.VenueRecommendations == nil || len(opp.VenueRecommendations) != 0 {
		t.Errorf("venues = %v, want empty slice", opp.VenueRecommendations)
	}
	if opp.TwapPrice != nil {
		t.Errorf("twap_price = %v, want nil", opp.TwapPrice)
	}
}

func TestFormatBasicDefaults(t *testing.T) {
	f := newTestFormatter()

	opp := f.FormatBasic(context.Background(), map[string]any{})
	if opp == nil {
		t.Fatal("FormatBasic returned nil for empty map")
	}
	if opp.Pair.StablecoinSymbol != "Unknown" || opp.Pair.FiatSymbol != "Unknown" {
		t.Errorf("pair defaults = %+v", opp.Pair)
	}
	if opp.TradeDirection != "hold" {
		t.Errorf("trade_direction = %q, want hold", opp.TradeDirection)
	}
	if opp.StablecoinPrice != "0.000000" {
		t.Errorf("stablecoin_price = %q, want 0.000000", opp.StablecoinPrice)
	}
	if opp.Timestamp == "" {
		t.Error("timestamp should default to current time")
	}
}

func TestCoerceText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"plain string", "XLM", "XLM"},
		{"byte slice", []byte("EURC"), "EURC"},
		{"number list", []any{float64(88), float64(76), float64(77)}, "XLM"},
		{"buffer shape", map[string]any{"type": "Buffer", "data": []any{float64(66), float64(85), float64(89)}}, "BUY"},
		{"out of range byte", []any{float64(300)}, ""},
		{"unrelated map", map[string]any{"x": 1}, ""},
		{"nil", nil, ""},
		{"number", float64(42), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceText(tt.input); got != tt.want {
				t.Errorf("coerceText(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
