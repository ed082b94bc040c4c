package soroban

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/stablearb/arbgate/internal/apperror"
	"github.com/stablearb/arbgate/internal/circuitbreaker"
	"github.com/stablearb/arbgate/internal/httpclient"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/scval"
)

// Finality polling: getTransaction is retried up to 60 times, 2s apart,
// before a submission counts as timed out.
const (
	defaultAwaitAttempts = 60
	defaultAwaitInterval = 2 * time.Second
)

// ClientConfig holds Soroban RPC client configuration.
type ClientConfig struct {
	URL     string
	Timeout time.Duration
}

// Client talks JSON-RPC 2.0 to a Soroban RPC node.
type Client struct {
	http    httpclient.Client
	breaker *gobreaker.CircuitBreaker[*httpclient.Response]
	logger  logger.LoggerInterface
	url     string
	nextID  atomic.Int64

	awaitAttempts int
	awaitInterval time.Duration
}

// NewClient creates a Soroban RPC client over the instrumented HTTP
// transport with a circuit breaker around all calls.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	opts := []httpclient.ClientOption{
		httpclient.WithProviderName("soroban"),
		httpclient.WithBaseURL(cfg.URL),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.WithRequestTimeout(cfg.Timeout))
	}

	hc, err := httpclient.NewInstrumentedClient(opts...)
	if err != nil {
		return nil, err
	}

	cbCfg := circuitbreaker.DefaultConfig("soroban-rpc")
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		http:          hc,
		breaker:       circuitbreaker.New[*httpclient.Response](cbCfg),
		logger:        log,
		url:           cfg.URL,
		awaitAttempts: defaultAwaitAttempts,
		awaitInterval: defaultAwaitInterval,
	}, nil
}

// call performs one JSON-RPC round trip and decodes result into out.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	resp, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		return c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("rpc_method", method)),
		).SetBody(req).Post(ctx, "")
	})
	if err != nil {
		return apperror.Wrap(circuitbreaker.MapError(err), apperror.CodeSorobanRPCError, method)
	}
	if resp.IsError() {
		return apperror.New(apperror.CodeSorobanRPCError,
			apperror.WithContext(fmt.Sprintf("%s: http %d", method, resp.StatusCode)))
	}

	var envelope rpcResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return apperror.New(apperror.CodeSorobanRPCError,
			apperror.WithContext(method), apperror.WithCause(err))
	}
	if envelope.Error != nil {
		return apperror.New(apperror.CodeSorobanRPCError,
			apperror.WithMessage(envelope.Error.Error()), apperror.WithContext(method))
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return apperror.New(apperror.CodeSorobanRPCError,
				apperror.WithContext(method), apperror.WithCause(err))
		}
	}
	return nil
}

// SimulateResult is the decoded outcome of a successful simulation.
type SimulateResult struct {
	ReturnValue     *scval.Value
	TransactionData string
	MinResourceFee  string
	LatestLedger    uint32
}

// SimulateTransaction simulates a base64 envelope and decodes the
// return value. Contract failures come back as errors whose text
// preserves the host diagnostic, which callers classify by substring.
func (c *Client) SimulateTransaction(ctx context.Context, txB64 string) (*SimulateResult, error) {
	var resp simulateResponse
	if err := c.call(ctx, "simulateTransaction", simulateParams{Transaction: txB64}, &resp); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		return nil, apperror.New(apperror.CodeSimulationFailed, apperror.WithMessage(resp.Error))
	}

	out := &SimulateResult{
		TransactionData: resp.TransactionData,
		MinResourceFee:  resp.MinResourceFee,
		LatestLedger:    resp.LatestLedger,
	}

	if len(resp.Results) > 0 {
		val, err := DecodeReturnValue(resp.Results[0].XDR)
		if err != nil {
			c.logger.Warn(ctx, "undecodable simulation return value", "error", err)
		} else {
			out.ReturnValue = val
		}
	}
	return out, nil
}

// SendTransaction submits a signed base64 envelope.
func (c *Client) SendTransaction(ctx context.Context, signedXDR string) (*SendResult, error) {
	var result SendResult
	if err := c.call(ctx, "sendTransaction", sendParams{Transaction: signedXDR}, &result); err != nil {
		return nil, err
	}

	if result.Status == SendStatusError {
		return &result, apperror.New(apperror.CodeTransactionFailed,
			apperror.WithContext(result.ErrorResultXDR))
	}
	return &result, nil
}

// GetTransaction fetches the current status of a submitted transaction.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*TransactionResult, error) {
	var result TransactionResult
	if err := c.call(ctx, "getTransaction", getTransactionParams{Hash: hash}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AwaitTransaction polls getTransaction until the transaction reaches
// a final status or the attempt budget runs out.
func (c *Client) AwaitTransaction(ctx context.Context, hash string) (*TransactionResult, error) {
	for attempt := 0; attempt < c.awaitAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.awaitInterval):
			}
		}

		result, err := c.GetTransaction(ctx, hash)
		if err != nil {
			// A failed poll still counts as an attempt.
			c.logger.Warn(ctx, "getTransaction poll failed", "hash", hash, "error", err)
			continue
		}

		switch result.Status {
		case TxStatusSuccess:
			return result, nil
		case TxStatusFailed:
			return result, apperror.New(apperror.CodeTransactionFailed,
				apperror.WithContext(result.ResultXDR))
		}
	}

	return nil, apperror.New(apperror.CodeTransactionTimeout, apperror.WithContext(hash))
}

// Health checks the RPC node's own health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.call(ctx, "getHealth", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return apperror.New(apperror.CodeServiceUnavailable,
			apperror.WithContext("rpc status "+resp.Status))
	}
	return nil
}

// LatestLedger returns the newest ledger sequence known to the node.
func (c *Client) LatestLedger(ctx context.Context) (uint32, error) {
	var resp latestLedgerResponse
	if err := c.call(ctx, "getLatestLedger", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Sequence, nil
}
