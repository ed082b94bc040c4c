// Package infra contains infrastructure adapters for the opportunity context.
package infra

import (
	"context"

	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/scval"
	"github.com/stablearb/arbgate/internal/soroban"
)

// ContractReader runs read-only calls against the arbitrage contract
// through the Soroban invoker.
type ContractReader struct {
	invoker  *soroban.Invoker
	contract string
}

// NewContractReader creates a reader bound to one contract address.
func NewContractReader(invoker *soroban.Invoker, contract string) *ContractReader {
	return &ContractReader{invoker: invoker, contract: contract}
}

// ReadCall simulates a contract method and returns the decoded return
// value. A nil value with nil error means the call returned nothing.
func (r *ContractReader) ReadCall(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error) {
	result, err := r.invoker.SimulateCall(ctx, r.contract, method, args...)
	if err != nil {
		return nil, err
	}
	return result.ReturnValue, nil
}
