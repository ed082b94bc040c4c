// Package domain contains the core domain types for the opportunity context.
package domain

import "time"

// PairInfo describes a monitored stablecoin pair.
type PairInfo struct {
	BaseAssetSymbol       string `json:"base_asset_symbol"`
	BaseAssetAddress      string `json:"base_asset_address"`
	QuoteAssetSymbol      string `json:"quote_asset_symbol"`
	QuoteAssetAddress     string `json:"quote_asset_address"`
	TargetPeg             string `json:"target_peg"`
	DeviationThresholdBps int64  `json:"deviation_threshold_bps"`
}

// BaseOpportunity is the core price-deviation snapshot shared by basic
// and enhanced opportunities.
type BaseOpportunity struct {
	Pair            PairInfo `json:"pair"`
	StablecoinPrice string   `json:"stablecoin_price"`
	FiatRate        string   `json:"fiat_rate"`
	DeviationBps    int64    `json:"deviation_bps"`
	EstimatedProfit string   `json:"estimated_profit"`
	TradeDirection  string   `json:"trade_direction"`
	Timestamp       int64    `json:"timestamp"`
}

// VenueRecommendation describes one execution venue for an opportunity.
type VenueRecommendation struct {
	Address            string `json:"address"`
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	FeeBps             int64  `json:"fee_bps"`
	LiquidityThreshold string `json:"liquidity_threshold"`
}

// EnhancedOpportunity is the full DTO returned by the advanced scan.
type EnhancedOpportunity struct {
	BaseOpportunity      BaseOpportunity       `json:"base_opportunity"`
	TwapPrice            *string               `json:"twap_price"`
	ConfidenceScore      int64                 `json:"confidence_score"`
	MaxTradeSize         string                `json:"max_trade_size"`
	VenueRecommendations []VenueRecommendation `json:"venue_recommendations"`
}

// BasicPair is the reduced pair shape used by the basic scan.
type BasicPair struct {
	StablecoinSymbol  string `json:"stablecoin_symbol"`
	StablecoinAddress string `json:"stablecoin_address"`
	FiatSymbol        string `json:"fiat_symbol"`
}

// BasicOpportunity is the DTO returned by the basic scan.
type BasicOpportunity struct {
	Pair            BasicPair `json:"pair"`
	StablecoinPrice string    `json:"stablecoin_price"`
	FiatRate        string    `json:"fiat_rate"`
	DeviationBps    int64     `json:"deviation_bps"`
	EstimatedProfit string    `json:"estimated_profit"`
	TradeDirection  string    `json:"trade_direction"`
	Timestamp       string    `json:"timestamp"`
}

// ScanResult is one point-in-time batch of enhanced opportunities.
type ScanResult struct {
	Opportunities []*EnhancedOpportunity `json:"opportunities"`
	Count         int                    `json:"count"`
	Timestamp     time.Time              `json:"timestamp"`
}

// BasicScanResult is one point-in-time batch of basic opportunities.
type BasicScanResult struct {
	Opportunities []*BasicOpportunity `json:"opportunities"`
	Count         int                 `json:"count"`
	Timestamp     time.Time           `json:"timestamp"`
}
