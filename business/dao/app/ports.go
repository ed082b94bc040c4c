// Package app contains application services for the dao context.
package app

import (
	"context"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
	"github.com/stablearb/arbgate/internal/soroban"
)

// ContractGateway runs calls against the DAO governance contract.
type ContractGateway interface {
	// Read simulates a method and returns the decoded return value.
	Read(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error)

	// Prepare builds an unsigned transaction XDR with the source
	// account's real sequence number.
	Prepare(ctx context.Context, source, method string, args ...xdr.ScVal) (string, error)

	// Submit sends a signed envelope to the network.
	Submit(ctx context.Context, signedXDR string) (*soroban.SendResult, error)
}
