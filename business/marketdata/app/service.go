// Package app contains application services for the marketdata context.
package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/logger"
)

// MarketProvider is the upstream market data API.
type MarketProvider interface {
	Markets(ctx context.Context) (json.RawMessage, error)
	ChartRange(ctx context.Context, coinID string, from, to int64) (json.RawMessage, error)
	AssetPlatforms(ctx context.Context) (json.RawMessage, error)
	TokenList(ctx context.Context, platformID string) (json.RawMessage, error)
}

// MarketService serves market data for the UI and USD quotes for
// balance pricing.
type MarketService struct {
	provider MarketProvider
	registry *asset.Registry
	logger   logger.LoggerInterface
	now      func() time.Time
}

// NewMarketService creates a MarketService.
func NewMarketService(provider MarketProvider, registry *asset.Registry, log logger.LoggerInterface) *MarketService {
	return &MarketService{
		provider: provider,
		registry: registry,
		logger:   log,
		now:      time.Now,
	}
}

// Markets returns the top coins by volume, unchanged from upstream.
func (s *MarketService) Markets(ctx context.Context) (json.RawMessage, error) {
	return s.provider.Markets(ctx)
}

// Chart returns a coin's price history for a UI timeframe. The window
// is wider than the timeframe so charts have lead-in context.
func (s *MarketService) Chart(ctx context.Context, coinID, timeframe string) (json.RawMessage, error) {
	from, to := s.timestampRange(timeframe)
	return s.provider.ChartRange(ctx, coinID, from, to)
}

// AssetPlatforms returns the upstream platform list.
func (s *MarketService) AssetPlatforms(ctx context.Context) (json.RawMessage, error) {
	return s.provider.AssetPlatforms(ctx)
}

// TokenList returns the token list for one platform.
func (s *MarketService) TokenList(ctx context.Context, platformID string) (json.RawMessage, error) {
	return s.provider.TokenList(ctx, platformID)
}

// USDPrice quotes a token's USD price. Until the on-chain oracle
// integration lands this is served from the registry's fallback table;
// unknown symbols quote at zero.
func (s *MarketService) USDPrice(ctx context.Context, symbol string) decimal.Decimal {
	if a, ok := s.registry.BySymbol(symbol); ok {
		return a.FallbackUSD
	}
	return decimal.Zero
}

// timestampRange maps a UI timeframe selector onto a from/to Unix
// second window.
func (s *MarketService) timestampRange(timeframe string) (int64, int64) {
	now := s.now().Unix()

	var lookback time.Duration
	switch timeframe {
	case "1h":
		lookback = 2 * time.Hour
	case "1":
		lookback = 2 * 24 * time.Hour
	case "7":
		lookback = 14 * 24 * time.Hour
	case "30":
		lookback = 60 * 24 * time.Hour
	case "90":
		lookback = 180 * 24 * time.Hour
	case "365":
		// Free API caps history at 450 days.
		lookback = 450 * 24 * time.Hour
	default:
		lookback = 60 * 24 * time.Hour
	}

	return now - int64(lookback.Seconds()), now
}
