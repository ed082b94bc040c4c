package soroban

import (
	"context"
	"net/http"
	"time"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/apperror"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/ratelimit"
)

// simulationAccount is the all-zero public key. Read-only simulations
// need a syntactically valid source account but no real one.
const simulationAccount = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"

// InvokerConfig holds envelope-building configuration.
type InvokerConfig struct {
	HorizonURL        string
	NetworkPassphrase string
	BaseFee           int64
	Timeout           time.Duration
}

// Invoker builds InvokeHostFunction envelopes for contract calls:
// throwaway envelopes for simulation and sequence-correct unsigned
// envelopes handed to wallets for signing.
type Invoker struct {
	rpc        *Client
	horizon    *horizonclient.Client
	limiter    *ratelimit.Limiter
	logger     logger.LoggerInterface
	passphrase string
	baseFee    int64
}

// NewInvoker creates an Invoker backed by the given RPC client.
func NewInvoker(cfg InvokerConfig, rpc *Client, log logger.LoggerInterface) *Invoker {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	baseFee := cfg.BaseFee
	if baseFee == 0 {
		baseFee = txnbuild.MinBaseFee * 100
	}

	horizon := &horizonclient.Client{
		HorizonURL: cfg.HorizonURL,
		HTTP:       &http.Client{Timeout: timeout},
	}

	return &Invoker{
		rpc:        rpc,
		horizon:    horizon,
		limiter:    ratelimit.NewWithBurst(5, 10),
		logger:     log,
		passphrase: cfg.NetworkPassphrase,
		baseFee:    baseFee,
	}
}

// buildEnvelope assembles an unsigned InvokeHostFunction transaction.
func (inv *Invoker) buildEnvelope(account txnbuild.Account, contract, method string, args []xdr.ScVal) (string, error) {
	contractAddr, err := ScAddressFromString(contract)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(contract), apperror.WithCause(err))
	}

	op := &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
			InvokeContract: &xdr.InvokeContractArgs{
				ContractAddress: contractAddr,
				FunctionName:    xdr.ScSymbol(method),
				Args:            args,
			},
		},
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        account,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              inv.baseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(300),
		},
	})
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidXDR,
			apperror.WithContext(method), apperror.WithCause(err))
	}

	return tx.Base64()
}

// SimulateCall runs a read-only contract call and returns the decoded
// result. The envelope is built against a stub account and never
// submitted.
func (inv *Invoker) SimulateCall(ctx context.Context, contract, method string, args ...xdr.ScVal) (*SimulateResult, error) {
	account := &txnbuild.SimpleAccount{AccountID: simulationAccount, Sequence: 0}

	envelope, err := inv.buildEnvelope(account, contract, method, args)
	if err != nil {
		return nil, err
	}

	inv.logger.Debug(ctx, "simulating contract call", "contract", contract, "method", method)
	return inv.rpc.SimulateTransaction(ctx, envelope)
}

// PrepareCall builds an unsigned envelope with the caller's real
// sequence number, for the wallet to sign and submit. Returns the
// base64 XDR.
func (inv *Invoker) PrepareCall(ctx context.Context, source, contract, method string, args ...xdr.ScVal) (string, error) {
	if err := inv.limiter.Wait(ctx); err != nil {
		return "", err
	}

	account, err := inv.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: source})
	if err != nil {
		return "", apperror.New(apperror.CodeSequenceFetchFailed,
			apperror.WithContext(source), apperror.WithCause(err))
	}

	envelope, err := inv.buildEnvelope(&account, contract, method, args)
	if err != nil {
		return "", err
	}

	inv.logger.Debug(ctx, "prepared contract call", "contract", contract, "method", method, "source", source)
	return envelope, nil
}

// PrepareSACDeployment builds an unsigned envelope that deploys the
// Stellar Asset Contract for a classic asset, for the wallet to sign
// and submit. Deploying an already-deployed SAC fails on-chain, not
// here.
func (inv *Invoker) PrepareSACDeployment(ctx context.Context, source string, asset xdr.Asset) (string, error) {
	if err := inv.limiter.Wait(ctx); err != nil {
		return "", err
	}

	account, err := inv.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: source})
	if err != nil {
		return "", apperror.New(apperror.CodeSequenceFetchFailed,
			apperror.WithContext(source), apperror.WithCause(err))
	}

	op := &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeCreateContract,
			CreateContract: &xdr.CreateContractArgs{
				ContractIdPreimage: xdr.ContractIdPreimage{
					Type:      xdr.ContractIdPreimageTypeContractIdPreimageFromAsset,
					FromAsset: &asset,
				},
				Executable: xdr.ContractExecutable{
					Type: xdr.ContractExecutableTypeContractExecutableStellarAsset,
				},
			},
		},
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              inv.baseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(300),
		},
	})
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidXDR,
			apperror.WithContext("create_stellar_asset_contract"), apperror.WithCause(err))
	}

	inv.logger.Debug(ctx, "prepared sac deployment", "source", source)
	return tx.Base64()
}

// RPC exposes the underlying client for submission and polling.
func (inv *Invoker) RPC() *Client {
	return inv.rpc
}
