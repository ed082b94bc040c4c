package app

import (
	"context"
	"time"

	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/scval"
)

// Contract method names for the two scan flavors.
const (
	methodScanAdvanced = "scan_advanced_opportunities"
	methodScanBasic    = "scan_opportunities"
	methodGetPairs     = "get_pairs"
)

// Scanner runs the read-only opportunity scans against the arbitrage
// contract. An empty or non-vector return value is a normal state, not
// a fault; only transport errors propagate.
type Scanner struct {
	reader    ContractReader
	formatter *Formatter
	logger    logger.LoggerInterface
}

// NewScanner creates a Scanner.
func NewScanner(reader ContractReader, formatter *Formatter, log logger.LoggerInterface) *Scanner {
	return &Scanner{
		reader:    reader,
		formatter: formatter,
		logger:    log,
	}
}

// ScanAdvanced simulates the enhanced scan and decodes each element.
// Elements that fail to format are dropped from the batch.
func (s *Scanner) ScanAdvanced(ctx context.Context) (*domain.ScanResult, error) {
	val, err := s.reader.ReadCall(ctx, methodScanAdvanced)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{
		Opportunities: []*domain.EnhancedOpportunity{},
		Timestamp:     time.Now().UTC(),
	}

	for _, parsed := range scval.ParseVec(val) {
		if opp := s.formatter.FormatEnhanced(ctx, parsed); opp != nil {
			result.Opportunities = append(result.Opportunities, opp)
		}
	}
	result.Count = len(result.Opportunities)

	s.logger.Debug(ctx, "advanced scan complete", "count", result.Count)
	return result, nil
}

// ScanBasic simulates the basic scan.
func (s *Scanner) ScanBasic(ctx context.Context) (*domain.BasicScanResult, error) {
	val, err := s.reader.ReadCall(ctx, methodScanBasic)
	if err != nil {
		return nil, err
	}

	result := &domain.BasicScanResult{
		Opportunities: []*domain.BasicOpportunity{},
		Timestamp:     time.Now().UTC(),
	}

	for _, parsed := range scval.ParseVec(val) {
		if opp := s.formatter.FormatBasic(ctx, parsed); opp != nil {
			result.Opportunities = append(result.Opportunities, opp)
		}
	}
	result.Count = len(result.Opportunities)

	s.logger.Debug(ctx, "basic scan complete", "count", result.Count)
	return result, nil
}

// Pairs fetches the configured stablecoin pairs.
func (s *Scanner) Pairs(ctx context.Context) ([]domain.PairInfo, error) {
	val, err := s.reader.ReadCall(ctx, methodGetPairs)
	if err != nil {
		return nil, err
	}

	pairs := []domain.PairInfo{}
	for _, parsed := range scval.ParseVec(val) {
		m, ok := parsed.(map[string]any)
		if !ok {
			continue
		}
		pairs = append(pairs, domain.PairInfo{
			BaseAssetSymbol:       coerceText(m["stablecoin_symbol"]),
			BaseAssetAddress:      coerceText(m["stablecoin_address"]),
			QuoteAssetSymbol:      coerceText(m["fiat_symbol"]),
			TargetPeg:             textOrNumber(m["target_peg"]),
			DeviationThresholdBps: asInt64(m["deviation_threshold_bps"]),
		})
	}
	return pairs, nil
}
