// Package soroban is the Soroban RPC client: JSON-RPC transport,
// transaction simulation and submission, and conversion of XDR contract
// values into the scval wire tree.
package soroban

import "encoding/json"

// JSON-RPC 2.0 envelope types.

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *rpcError) Error() string {
	if e.Data != "" {
		return e.Message + ": " + e.Data
	}
	return e.Message
}

// simulateTransaction

type simulateParams struct {
	Transaction string `json:"transaction"`
}

type simulateResponse struct {
	TransactionData string           `json:"transactionData"`
	MinResourceFee  string           `json:"minResourceFee"`
	Results         []simulateResult `json:"results"`
	LatestLedger    uint32           `json:"latestLedger"`
	Error           string           `json:"error,omitempty"`
}

type simulateResult struct {
	XDR  string   `json:"xdr"`
	Auth []string `json:"auth"`
}

// sendTransaction

type sendParams struct {
	Transaction string `json:"transaction"`
}

// SendResult is the outcome of a sendTransaction call.
type SendResult struct {
	Hash           string `json:"hash"`
	Status         string `json:"status"`
	LatestLedger   uint32 `json:"latestLedger"`
	ErrorResultXDR string `json:"errorResultXdr,omitempty"`
}

// getTransaction

type getTransactionParams struct {
	Hash string `json:"hash"`
}

// Transaction statuses reported by getTransaction.
const (
	TxStatusNotFound = "NOT_FOUND"
	TxStatusSuccess  = "SUCCESS"
	TxStatusFailed   = "FAILED"

	// sendTransaction statuses.
	SendStatusPending   = "PENDING"
	SendStatusError     = "ERROR"
	SendStatusDuplicate = "DUPLICATE"
)

// TransactionResult is the outcome of a getTransaction call.
type TransactionResult struct {
	Status       string `json:"status"`
	Ledger       uint32 `json:"ledger,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	LatestLedger uint32 `json:"latestLedger"`
	ResultXDR    string `json:"resultXdr,omitempty"`
	EnvelopeXDR  string `json:"envelopeXdr,omitempty"`
}

// getHealth

type healthResponse struct {
	Status string `json:"status"`
}

// getLatestLedger

type latestLedgerResponse struct {
	Sequence        uint32 `json:"sequence"`
	ProtocolVersion uint32 `json:"protocolVersion"`
}
