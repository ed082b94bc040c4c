// Package app contains application services for the account context.
package app

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
)

// ContractGateway runs calls against the arbitrage contract: read-only
// simulations and unsigned envelope preparation for wallet signing.
type ContractGateway interface {
	// Read simulates a method and returns the decoded return value.
	Read(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error)

	// Prepare builds an unsigned transaction XDR with the source
	// account's real sequence number.
	Prepare(ctx context.Context, source, method string, args ...xdr.ScVal) (string, error)

	// PrepareSACDeployment builds an unsigned envelope deploying the
	// asset's Stellar Asset Contract.
	PrepareSACDeployment(ctx context.Context, source string, asset xdr.Asset) (string, error)
}

// PriceSource quotes a token's USD price by symbol.
type PriceSource interface {
	USDPrice(ctx context.Context, symbol string) decimal.Decimal
}
