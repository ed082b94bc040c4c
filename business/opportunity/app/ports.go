package app

import (
	"context"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/scval"
)

// ContractReader runs read-only contract calls in simulation mode and
// returns the decoded return value. A nil value with a nil error means
// the simulation succeeded but returned nothing.
type ContractReader interface {
	ReadCall(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error)
}

// Reporter receives scan batches for display or logging.
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// Report delivers one scan batch.
	Report(result *domain.ScanResult)

	// Stop gracefully shuts down the reporter.
	Stop() error
}

// Broadcaster fans a scan batch out to stream subscribers.
type Broadcaster interface {
	Broadcast(result *domain.ScanResult)
}
