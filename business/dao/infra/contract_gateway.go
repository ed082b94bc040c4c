// Package infra contains infrastructure adapters for the dao context.
package infra

import (
	"context"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
	"github.com/stablearb/arbgate/internal/soroban"
)

// ContractGateway adapts the Soroban invoker to the dao context's
// gateway port, bound to the governance contract address.
type ContractGateway struct {
	invoker  *soroban.Invoker
	contract string
}

// NewContractGateway creates a gateway bound to the DAO contract.
func NewContractGateway(invoker *soroban.Invoker, contract string) *ContractGateway {
	return &ContractGateway{invoker: invoker, contract: contract}
}

// Read simulates a read-only method call.
func (g *ContractGateway) Read(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error) {
	result, err := g.invoker.SimulateCall(ctx, g.contract, method, args...)
	if err != nil {
		return nil, err
	}
	return result.ReturnValue, nil
}

// Prepare builds an unsigned transaction envelope for wallet signing.
func (g *ContractGateway) Prepare(ctx context.Context, source, method string, args ...xdr.ScVal) (string, error) {
	return g.invoker.PrepareCall(ctx, source, g.contract, method, args...)
}

// Submit sends a signed envelope to the network.
func (g *ContractGateway) Submit(ctx context.Context, signedXDR string) (*soroban.SendResult, error) {
	return g.invoker.RPC().SendTransaction(ctx, signedXDR)
}
