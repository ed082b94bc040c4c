package app

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/scval"
)

const testUser = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"

type fakeGateway struct {
	readValue  *scval.Value
	readErr    error
	lastMethod string
	lastArgs   []xdr.ScVal
	prepared   string
	prepareErr error
	sacAsset   *xdr.Asset
}

func (f *fakeGateway) Read(ctx context.Context, method string, args ...xdr.ScVal) (*scval.Value, error) {
	f.lastMethod = method
	f.lastArgs = args
	return f.readValue, f.readErr
}

func (f *fakeGateway) Prepare(ctx context.Context, source, method string, args ...xdr.ScVal) (string, error) {
	f.lastMethod = method
	f.lastArgs = args
	if f.prepared == "" {
		f.prepared = "AAAA...envelope"
	}
	return f.prepared, f.prepareErr
}

func (f *fakeGateway) PrepareSACDeployment(ctx context.Context, source string, a xdr.Asset) (string, error) {
	f.sacAsset = &a
	if f.prepared == "" {
		f.prepared = "AAAA...envelope"
	}
	return f.prepared, f.prepareErr
}

type fakePrices struct {
	prices map[string]decimal.Decimal
}

func (f *fakePrices) USDPrice(ctx context.Context, symbol string) decimal.Decimal {
	return f.prices[symbol]
}

func newTestService(gw ContractGateway, prices PriceSource) *Service {
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return NewService(gw, asset.DefaultRegistry(), prices,
		ServiceConfig{NetworkPassphrase: "Test SDF Network ; September 2015"}, log)
}

func sym(s string) scval.Value {
	return scval.Value{Kind: scval.KindSymbol, Sym: []byte(s)}
}

func i128(hi, lo string) scval.Value {
	return scval.Value{Kind: scval.KindI128, I128: &scval.Int128Parts{Hi: json.Number(hi), Lo: json.Number(lo)}}
}

func u32v(n uint32) scval.Value {
	return scval.Value{Kind: scval.KindU32, U32: &n}
}

func boolv(b bool) scval.Value {
	return scval.Value{Kind: scval.KindBool, B: &b}
}

func contractAddr(t *testing.T, strkeyAddr string) scval.Value {
	t.Helper()
	raw, err := strkey.Decode(strkey.VersionByteContract, strkeyAddr)
	if err != nil {
		t.Fatalf("bad contract strkey fixture: %v", err)
	}
	return scval.Value{Kind: scval.KindAddress, Addr: &scval.Address{
		Type:  scval.AddressTypeContract,
		Bytes: raw,
	}}
}

func TestConfigKeepsRawAmounts(t *testing.T) {
	gw := &fakeGateway{readValue: &scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("enabled"), Val: boolv(true)},
		{Key: sym("max_gas_price"), Val: i128("0", "50000000")},
		{Key: sym("max_trade_size"), Val: i128("0", "1000000000")},
		{Key: sym("min_liquidity"), Val: i128("0", "100000000")},
		{Key: sym("min_profit_bps"), Val: u32v(25)},
		{Key: sym("slippage_tolerance_bps"), Val: u32v(100)},
	}}}
	s := newTestService(gw, nil)

	cfg, err := s.Config(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Config failed: %v", err)
	}
	if gw.lastMethod != "get_user_config" {
		t.Errorf("method = %q", gw.lastMethod)
	}
	if !cfg.Enabled {
		t.Error("enabled = false, want true")
	}
	if cfg.MaxGasPrice != "50000000" {
		t.Errorf("max_gas_price = %q, want raw integer", cfg.MaxGasPrice)
	}
	if cfg.MinProfitBps != 25 || cfg.SlippageToleranceBps != 100 {
		t.Errorf("bps fields = %d/%d", cfg.MinProfitBps, cfg.SlippageToleranceBps)
	}
}

func TestConfigRejectsInvalidAddress(t *testing.T) {
	s := newTestService(&fakeGateway{}, nil)

	if _, err := s.Config(context.Background(), "not-an-address"); err == nil {
		t.Fatal("expected invalid address error")
	}
}

func TestCheckInitialized(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{"initialized", nil, true, false},
		{"account not initialized", errors.New("HostError: account not initialized"), false, false},
		{"account not found", errors.New("entry not found for user"), false, false},
		{"transport failure", errors.New("connection refused"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{readErr: tt.err}
			if tt.err == nil {
				gw.readValue = &scval.Value{Kind: scval.KindMap}
			}
			s := newTestService(gw, nil)

			got, err := s.CheckInitialized(context.Background(), testUser)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("initialized = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTradeHistoryNormalizesAmounts(t *testing.T) {
	trade := scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("executed_amount"), Val: i128("0", "100000000")},
		{Key: sym("actual_profit"), Val: i128("0", "1234567")},
		{Key: sym("gas_cost"), Val: i128("0", "0")},
		{Key: sym("status"), Val: sym("Completed")},
	}}
	gw := &fakeGateway{readValue: &scval.Value{Kind: scval.KindVec, Vec: []scval.Value{trade}}}
	s := newTestService(gw, nil)

	trades, err := s.TradeHistory(context.Background(), testUser, 0)
	if err != nil {
		t.Fatalf("TradeHistory failed: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(trades))
	}
	if trades[0].ExecutedAmount != "10.000000" {
		t.Errorf("executed_amount = %q, want 10.000000", trades[0].ExecutedAmount)
	}
	if trades[0].ActualProfit != "0.123457" {
		t.Errorf("actual_profit = %q, want 0.123457", trades[0].ActualProfit)
	}
	if trades[0].GasCost != "0.000000" {
		t.Errorf("gas_cost = %q, want 0.000000", trades[0].GasCost)
	}
}

func TestBalancesPricedInUSD(t *testing.T) {
	gw := &fakeGateway{readValue: &scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: contractAddr(t, asset.ContractUSDC), Val: i128("0", "10000000")},
	}}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{
		"USDC": decimal.NewFromInt(1),
	}}
	s := newTestService(gw, prices)

	sheet, err := s.Balances(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	raw, ok := sheet.Balances[asset.ContractUSDC]
	if !ok {
		t.Fatalf("balance keys = %v, want %s", sheet.Balances, asset.ContractUSDC)
	}
	if raw != "10000000" {
		t.Errorf("raw balance = %q, want 10000000", raw)
	}

	priced := sheet.BalancesWithPrices[asset.ContractUSDC]
	if priced.Balance != "1.000000" {
		t.Errorf("balance = %q, want 1.000000", priced.Balance)
	}
	if priced.USDValue != "1.00" {
		t.Errorf("usdValue = %q, want 1.00", priced.USDValue)
	}
	if sheet.PortfolioValue != "1.00" {
		t.Errorf("portfolioValue = %q, want 1.00", sheet.PortfolioValue)
	}
}

func TestUserMetricsDerivedRates(t *testing.T) {
	gw := &fakeGateway{readValue: &scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("total_trades"), Val: u32v(10)},
		{Key: sym("successful_trades"), Val: u32v(8)},
		{Key: sym("total_profit"), Val: i128("0", "50000000")},
		{Key: sym("success_rate_bps"), Val: u32v(8000)},
	}}}
	s := newTestService(gw, nil)

	metrics, err := s.UserMetrics(context.Background(), testUser, 0)
	if err != nil {
		t.Fatalf("UserMetrics failed: %v", err)
	}
	if metrics.SuccessRate != "80.00" {
		t.Errorf("success_rate = %q, want 80.00", metrics.SuccessRate)
	}
	if metrics.WinRate != "80.00" {
		t.Errorf("win_rate = %q, want 80.00", metrics.WinRate)
	}
	if metrics.TotalProfit != "5.000000" {
		t.Errorf("total_profit = %q, want normalized 5.000000", metrics.TotalProfit)
	}
	if metrics.PeriodDays != int64(DefaultMetricsDays) {
		t.Errorf("period_days = %d, want default %d", metrics.PeriodDays, DefaultMetricsDays)
	}
}

func TestBotMetricsKeepRawAmounts(t *testing.T) {
	gw := &fakeGateway{readValue: &scval.Value{Kind: scval.KindMap, Map: []scval.Entry{
		{Key: sym("total_trades"), Val: u32v(4)},
		{Key: sym("total_profit"), Val: i128("0", "50000000")},
	}}}
	s := newTestService(gw, nil)

	metrics, err := s.BotMetrics(context.Background(), 7)
	if err != nil {
		t.Fatalf("BotMetrics failed: %v", err)
	}
	if metrics.TotalProfit != "50000000" {
		t.Errorf("total_profit = %q, want raw 50000000", metrics.TotalProfit)
	}
	if metrics.PeriodDays != 7 {
		t.Errorf("period_days = %d, want 7", metrics.PeriodDays)
	}
}

func TestDepositResolvesNativeSAC(t *testing.T) {
	gw := &fakeGateway{prepared: "AAAAenvelope"}
	s := newTestService(gw, nil)

	xdrOut, err := s.Deposit(context.Background(), testUser, "", "10000000", true, "")
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if xdrOut != "AAAAenvelope" {
		t.Errorf("xdr = %q", xdrOut)
	}
	if gw.lastMethod != "deposit_user_funds" {
		t.Errorf("method = %q", gw.lastMethod)
	}
	if len(gw.lastArgs) != 3 {
		t.Fatalf("args = %d, want user, token, amount", len(gw.lastArgs))
	}
}

func TestWithdrawRejectsBadAmount(t *testing.T) {
	s := newTestService(&fakeGateway{}, nil)

	if _, err := s.Withdraw(context.Background(), testUser, asset.ContractUSDC, "ten", false, "USDC"); err == nil {
		t.Fatal("expected invalid amount error")
	}
}

func TestDeploySACNative(t *testing.T) {
	gw := &fakeGateway{prepared: "AAAAdeploy"}
	s := newTestService(gw, nil)

	deployment, err := s.DeploySAC(context.Background(), testUser, "native", "", "")
	if err != nil {
		t.Fatalf("DeploySAC failed: %v", err)
	}
	if deployment.TransactionXDR != "AAAAdeploy" {
		t.Errorf("xdr = %q", deployment.TransactionXDR)
	}
	if deployment.AssetCode != "XLM" || deployment.AssetType != "native" {
		t.Errorf("asset = %s/%s, want XLM/native", deployment.AssetCode, deployment.AssetType)
	}
	if deployment.ContractAddress != s.NativeContractAddress() {
		t.Errorf("contract = %q, want native SAC %q", deployment.ContractAddress, s.NativeContractAddress())
	}
	if gw.sacAsset == nil || gw.sacAsset.Type != xdr.AssetTypeAssetTypeNative {
		t.Errorf("deployed asset = %+v, want native", gw.sacAsset)
	}
}

func TestDeploySACXLMCodeIsNative(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestService(gw, nil)

	deployment, err := s.DeploySAC(context.Background(), testUser, "", "XLM", "")
	if err != nil {
		t.Fatalf("DeploySAC failed: %v", err)
	}
	if deployment.AssetType != "native" {
		t.Errorf("asset type = %q, want native", deployment.AssetType)
	}
}

func TestDeploySACIssuedAsset(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestService(gw, nil)

	deployment, err := s.DeploySAC(context.Background(), testUser, "", "USDC", asset.IssuerUSDC)
	if err != nil {
		t.Fatalf("DeploySAC failed: %v", err)
	}
	if deployment.AssetCode != "USDC" || deployment.AssetType != "issued" {
		t.Errorf("asset = %s/%s, want USDC/issued", deployment.AssetCode, deployment.AssetType)
	}
	if _, err := strkey.Decode(strkey.VersionByteContract, deployment.ContractAddress); err != nil {
		t.Errorf("contract = %q, not a contract strkey: %v", deployment.ContractAddress, err)
	}
	if deployment.ContractAddress == s.NativeContractAddress() {
		t.Error("issued asset resolved to the native SAC")
	}
	if gw.sacAsset == nil || gw.sacAsset.Type != xdr.AssetTypeAssetTypeCreditAlphanum4 {
		t.Errorf("deployed asset = %+v, want alphanum4 credit", gw.sacAsset)
	}
}

func TestDeploySACRejectsBadIssuer(t *testing.T) {
	s := newTestService(&fakeGateway{}, nil)

	if _, err := s.DeploySAC(context.Background(), testUser, "", "USDC", "not-an-issuer"); err == nil {
		t.Fatal("expected invalid asset error")
	}
}

func TestNativeContractAddress(t *testing.T) {
	s := newTestService(&fakeGateway{}, nil)

	addr := s.NativeContractAddress()
	if !strings.HasPrefix(addr, "C") {
		t.Errorf("native SAC = %q, want contract strkey", addr)
	}
	if _, err := strkey.Decode(strkey.VersionByteContract, addr); err != nil {
		t.Errorf("native SAC not a valid contract address: %v", err)
	}
}

func TestCanonicalToken(t *testing.T) {
	raw, err := strkey.Decode(strkey.VersionByteContract, asset.ContractUSDC)
	if err != nil {
		t.Fatalf("strkey fixture: %v", err)
	}
	hexKey := "CONTRACT_" + strings.ToUpper(hex.EncodeToString(raw))

	tests := []struct {
		in   string
		want string
	}{
		{hexKey, asset.ContractUSDC},
		{asset.ContractUSDC, asset.ContractUSDC},
		{"native", "native"},
		{"CONTRACT_ZZZZ", "CONTRACT_ZZZZ"},
	}
	for _, tt := range tests {
		if got := canonicalToken(tt.in); got != tt.want {
			t.Errorf("canonicalToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
