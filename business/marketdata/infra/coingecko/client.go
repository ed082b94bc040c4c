// Package coingecko implements the CoinGecko market data provider.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stablearb/arbgate/internal/apperror"
	"github.com/stablearb/arbgate/internal/httpclient"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/ratelimit"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Market list defaults.
const (
	marketCurrency = "usd"
	marketOrder    = "volume_desc"
	marketPerPage  = "50"
)

// ClientConfig holds CoinGecko client configuration.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	RatePerSecond float64
	Timeout       time.Duration
}

// Client talks to the public CoinGecko API. Responses pass through as
// raw JSON since the gateway proxies them unchanged.
type Client struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	apiKey  string
	logger  logger.LoggerInterface
}

// NewClient creates a CoinGecko client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	rate := cfg.RatePerSecond
	if rate == 0 {
		rate = 0.5
	}

	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("coingecko"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    hc,
		limiter: ratelimit.NewWithBurst(rate, 3),
		apiKey:  cfg.APIKey,
		logger:  log,
	}, nil
}

// Markets fetches the top coins by volume.
func (c *Client) Markets(ctx context.Context) (json.RawMessage, error) {
	req := c.newRequest("markets").
		SetQueryParam("vs_currency", marketCurrency).
		SetQueryParam("order", marketOrder).
		SetQueryParam("per_page", marketPerPage)

	return c.get(ctx, req, "/coins/markets")
}

// ChartRange fetches a coin's USD price history between two Unix
// timestamps.
func (c *Client) ChartRange(ctx context.Context, coinID string, from, to int64) (json.RawMessage, error) {
	req := c.newRequest("chart_range").
		SetQueryParam("vs_currency", marketCurrency).
		SetQueryParam("from", strconv.FormatInt(from, 10)).
		SetQueryParam("to", strconv.FormatInt(to, 10))

	return c.get(ctx, req, fmt.Sprintf("/coins/%s/market_chart/range", coinID))
}

// AssetPlatforms fetches the list of asset platforms.
func (c *Client) AssetPlatforms(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.newRequest("asset_platforms"), "/asset_platforms")
}

// TokenList fetches the token list for one asset platform.
func (c *Client) TokenList(ctx context.Context, platformID string) (json.RawMessage, error) {
	return c.get(ctx, c.newRequest("token_list"), fmt.Sprintf("/token_lists/%s/all.json", platformID))
}

func (c *Client) newRequest(label string) httpclient.Request {
	req := c.http.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", label)),
	).SetHeader("accept", "application/json")

	if c.apiKey != "" {
		req.SetHeader("x-cg-demo-api-key", c.apiKey)
	}
	return req
}

func (c *Client) get(ctx context.Context, req httpclient.Request, path string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := req.Get(ctx, path)
	if err != nil {
		return nil, apperror.New(apperror.CodeCoinGeckoAPIError,
			apperror.WithContext(path), apperror.WithCause(err))
	}
	if resp.StatusCode == 429 {
		return nil, apperror.New(apperror.CodeCoinGeckoRateLimited, apperror.WithContext(path))
	}
	if resp.IsError() {
		return nil, apperror.New(apperror.CodeCoinGeckoAPIError,
			apperror.WithContext(fmt.Sprintf("%s: http %d", path, resp.StatusCode)))
	}

	return json.RawMessage(resp.Body()), nil
}
