// Package infra contains infrastructure adapters for the account context.
package infra

import (
	"context"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
	"github.com/stablearb/arbgate/internal/soroban"
)

// ContractGateway adapts the Soroban invoker to the account context's
// gateway port, bound to the arbitrage contract address.
type ContractGateway struct {
	invoker  *soroban.Invoker
	contract string
}

// NewContractGateway creates a gateway bound to one contract address.
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

// PrepareSACDeployment builds an unsigned Stellar Asset Contract
// deployment envelope.
func (g *ContractGateway) PrepareSACDeployment(ctx context.Context, source string, asset xdr.Asset) (string, error) {
	return g.invoker.PrepareSACDeployment(ctx, source, asset)
}
