// Package app contains application services for the opportunity context.
package app

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/fixedpoint"
	"github.com/stablearb/arbgate/internal/logger"
)

// Decimal scales declared by the contract.
const (
	priceDecimals = 7
	pegDecimals   = 4
)

// Formatter reshapes the tagged-value parser's generic output into the
// opportunity DTOs. Malformed elements degrade to nil, never panic.
type Formatter struct {
	logger logger.LoggerInterface
}

// NewFormatter creates a Formatter.
func NewFormatter(log logger.LoggerInterface) *Formatter {
	return &Formatter{logger: log}
}

// FormatEnhanced builds an EnhancedOpportunity from one parsed scan
// element. Returns nil when base_opportunity.pair is missing or the
// element is otherwise unusable.
func (f *Formatter) FormatEnhanced(ctx context.Context, parsed any) (out *domain.EnhancedOpportunity) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn(ctx, "opportunity formatting failed", "panic", r)
			out = nil
		}
	}()

	m, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}

	base, ok := m["base_opportunity"].(map[string]any)
	if !ok {
		return nil
	}
	pairRaw, ok := base["pair"].(map[string]any)
	if !ok {
		return nil
	}

	opp := &domain.EnhancedOpportunity{
		BaseOpportunity: domain.BaseOpportunity{
			Pair: domain.PairInfo{
				BaseAssetSymbol:       coerceText(pairRaw["base_asset_symbol"]),
				BaseAssetAddress:      coerceText(pairRaw["base_asset_address"]),
				QuoteAssetSymbol:      coerceText(pairRaw["quote_asset_symbol"]),
				QuoteAssetAddress:     coerceText(pairRaw["quote_asset_address"]),
				TargetPeg:             fixedpoint.NormalizeAny(pairRaw["target_peg"], pegDecimals),
				DeviationThresholdBps: asInt64(pairRaw["deviation_threshold_bps"]),
			},
			StablecoinPrice: fixedpoint.NormalizeAny(base["stablecoin_price"], priceDecimals),
			FiatRate:        fixedpoint.NormalizeAny(base["fiat_rate"], priceDecimals),
			DeviationBps:    asInt64(base["deviation_bps"]),
			EstimatedProfit: fixedpoint.NormalizeAny(base["estimated_profit"], priceDecimals),
			TradeDirection:  coerceText(base["trade_direction"]),
			Timestamp:       asInt64(base["timestamp"]),
		},
		ConfidenceScore:      asInt64(m["confidence_score"]),
		MaxTradeSize:         fixedpoint.NormalizeAny(m["max_trade_size"], priceDecimals),
		VenueRecommendations: []domain.VenueRecommendation{},
	}

	if twap, present := m["twap_price"]; present && twap != nil {
		s := fixedpoint.NormalizeAny(twap, priceDecimals)
		opp.TwapPrice = &s
	}

	if venues, ok := m["venue_recommendations"].([]any); ok {
		for _, v := range venues {
			venue, ok := v.(map[string]any)
			if !ok {
				continue
			}
			enabled, _ := venue["enabled"].(bool)
			opp.VenueRecommendations = append(opp.VenueRecommendations, domain.VenueRecommendation{
				Address:            coerceText(venue["address"]),
				Name:               coerceText(venue["name"]),
				Enabled:            enabled,
				FeeBps:             asInt64(venue["fee_bps"]),
				LiquidityThreshold: fixedpoint.NormalizeAny(venue["liquidity_threshold"], priceDecimals),
			})
		}
	}

	return opp
}

// FormatBasic builds a BasicOpportunity from one parsed element of the
// basic scan. Missing fields take display defaults rather than failing.
func (f *Formatter) FormatBasic(ctx context.Context, parsed any) (out *domain.BasicOpportunity) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn(ctx, "opportunity formatting failed", "panic", r)
			out = nil
		}
	}()

	m, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}

	pair := domain.BasicPair{StablecoinSymbol: "Unknown", FiatSymbol: "Unknown"}
	if pairRaw, ok := m["pair"].(map[string]any); ok {
		if s := coerceText(pairRaw["stablecoin_symbol"]); s != "" {
			pair.StablecoinSymbol = s
		}
		pair.StablecoinAddress = coerceText(pairRaw["stablecoin_address"])
		if s := coerceText(pairRaw["fiat_symbol"]); s != "" {
			pair.FiatSymbol = s
		}
	}

	direction := coerceText(m["trade_direction"])
	if direction == "" {
		direction = "hold"
	}

	timestamp := textOrNumber(m["timestamp"])
	if timestamp == "" {
		timestamp = strconv.FormatInt(time.Now().Unix(), 10)
	}

	return &domain.BasicOpportunity{
		Pair:            pair,
		StablecoinPrice: fixedpoint.NormalizeAny(m["stablecoin_price"], priceDecimals),
		FiatRate:        fixedpoint.NormalizeAny(m["fiat_rate"], priceDecimals),
		DeviationBps:    asInt64(m["deviation_bps"]),
		EstimatedProfit: fixedpoint.NormalizeAny(m["estimated_profit"], priceDecimals),
		TradeDirection:  direction,
		Timestamp:       timestamp,
	}
}

// coerceText turns the shapes a textual field may arrive in into a
// UTF-8 string: an already-decoded string, a raw byte slice, a list of
// byte values, or the serialized Buffer form {"type":"Buffer","data":
// [...]}. Anything else yields "".
func coerceText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case []any:
		return bytesFromList(x)
	case map[string]any:
		if t, _ := x["type"].(string); t == "Buffer" {
			if data, ok := x["data"].([]any); ok {
				return bytesFromList(data)
			}
		}
	}
	return ""
}

func bytesFromList(list []any) string {
	buf := make([]byte, 0, len(list))
	for _, e := range list {
		n, ok := byteValue(e)
		if !ok {
			return ""
		}
		buf = append(buf, n)
	}
	return string(buf)
}

func byteValue(v any) (byte, bool) {
	var n int64
	switch x := v.(type) {
	case float64:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	default:
		return 0, false
	}
	if n < 0 || n > 255 {
		return 0, false
	}
	return byte(n), true
}

// asInt64 extracts an integral value from whatever numeric shape the
// parser produced. Unusable shapes yield 0.
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

// textOrNumber renders a field that may be either textual or numeric.
func textOrNumber(v any) string {
	if s := coerceText(v); s != "" {
		return s
	}
	switch x := v.(type) {
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case *big.Int:
		return x.String()
	}
	return ""
}
