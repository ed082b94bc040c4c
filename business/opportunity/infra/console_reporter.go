package infra

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/stablearb/arbgate/business/opportunity/domain"
)

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		out: os.Stdout,
	}
}

// Start initializes the console reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Opportunity Scanner Started")
	fmt.Fprintln(r.out, "===========================")
	return nil
}

// Report outputs one scan batch to the console.
func (r *ConsoleReporter) Report(result *domain.ScanResult) {
	fmt.Fprintf(r.out, "[%s] %d opportunities\n",
		result.Timestamp.Format("15:04:05"), result.Count)

	for _, opp := range result.Opportunities {
		base := opp.BaseOpportunity
		fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
		fmt.Fprintf(r.out, "Pair:           %s/%s\n", base.Pair.BaseAssetSymbol, base.Pair.QuoteAssetSymbol)
		fmt.Fprintf(r.out, "Direction:      %s\n", base.TradeDirection)
		fmt.Fprintf(r.out, "Price:          %s (peg %s)\n", base.StablecoinPrice, base.Pair.TargetPeg)
		fmt.Fprintf(r.out, "Deviation:      %d bps\n", base.DeviationBps)
		fmt.Fprintf(r.out, "Est. Profit:    %s\n", base.EstimatedProfit)
		fmt.Fprintf(r.out, "Confidence:     %d\n", opp.ConfidenceScore)
		fmt.Fprintf(r.out, "Max Size:       %s\n", opp.MaxTradeSize)
		if opp.TwapPrice != nil {
			fmt.Fprintf(r.out, "TWAP:           %s\n", *opp.TwapPrice)
		}
		for _, venue := range opp.VenueRecommendations {
			fmt.Fprintf(r.out, "  Venue:        %s (fee %d bps, enabled %v)\n", venue.Name, venue.FeeBps, venue.Enabled)
		}
	}

	if result.Count > 0 {
		fmt.Fprintln(r.out, "================================================================================")
	}
}

// Stop gracefully shuts down the console reporter.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Opportunity Scanner Stopped")
	return nil
}
