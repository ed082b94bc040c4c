package app

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/logger"
)

type fakeProvider struct {
	lastCoinID   string
	lastFrom     int64
	lastTo       int64
	lastPlatform string
}

func (f *fakeProvider) Markets(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[{"id":"stellar"}]`), nil
}

func (f *fakeProvider) ChartRange(ctx context.Context, coinID string, from, to int64) (json.RawMessage, error) {
	f.lastCoinID = coinID
	f.lastFrom = from
	f.lastTo = to
	return json.RawMessage(`{"prices":[]}`), nil
}

func (f *fakeProvider) AssetPlatforms(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (f *fakeProvider) TokenList(ctx context.Context, platformID string) (json.RawMessage, error) {
	f.lastPlatform = platformID
	return json.RawMessage(`{"tokens":[]}`), nil
}

func newTestService(provider MarketProvider) *MarketService {
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return NewMarketService(provider, asset.DefaultRegistry(), log)
}

func TestChartTimeframeWindows(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		timeframe string
		lookback  time.Duration
	}{
		{"1h", 2 * time.Hour},
		{"1", 2 * 24 * time.Hour},
		{"7", 14 * 24 * time.Hour},
		{"30", 60 * 24 * time.Hour},
		{"90", 180 * 24 * time.Hour},
		{"365", 450 * 24 * time.Hour},
		{"unknown", 60 * 24 * time.Hour},
		{"", 60 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run("timeframe "+tt.timeframe, func(t *testing.T) {
			provider := &fakeProvider{}
			s := newTestService(provider)
			s.now = func() time.Time { return fixed }

			if _, err := s.Chart(context.Background(), "stellar", tt.timeframe); err != nil {
				t.Fatalf("Chart failed: %v", err)
			}
			if provider.lastCoinID != "stellar" {
				t.Errorf("coinID = %q", provider.lastCoinID)
			}
			if provider.lastTo != fixed.Unix() {
				t.Errorf("to = %d, want %d", provider.lastTo, fixed.Unix())
			}
			wantFrom := fixed.Add(-tt.lookback).Unix()
			if provider.lastFrom != wantFrom {
				t.Errorf("from = %d, want %d", provider.lastFrom, wantFrom)
			}
		})
	}
}

func TestTokenListForwardsPlatform(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestService(provider)

	if _, err := s.TokenList(context.Background(), "stellar"); err != nil {
		t.Fatalf("TokenList failed: %v", err)
	}
	if provider.lastPlatform != "stellar" {
		t.Errorf("platform = %q, want stellar", provider.lastPlatform)
	}
}

func TestUSDPriceFallbacks(t *testing.T) {
	s := newTestService(&fakeProvider{})

	if got := s.USDPrice(context.Background(), "USDC"); got.String() != "1" {
		t.Errorf("USDC = %s, want 1", got)
	}
	if got := s.USDPrice(context.Background(), "XLM"); got.IsZero() {
		t.Error("XLM quoted at zero, want fallback price")
	}
	if got := s.USDPrice(context.Background(), "DOGE"); !got.IsZero() {
		t.Errorf("unknown symbol = %s, want 0", got)
	}
}
