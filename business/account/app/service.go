package app

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/business/account/domain"
	"github.com/stablearb/arbgate/internal/apperror"
	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/fixedpoint"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/scval"
)

// Defaults applied when the caller omits a parameter.
const (
	DefaultHistoryLimit = 50
	DefaultMetricsDays  = 30
)

// ServiceConfig holds account service configuration.
type ServiceConfig struct {
	NetworkPassphrase string
}

// Service exposes the user-account operations of the arbitrage
// contract: configuration, balances, history, metrics and fund
// movement preparation.
type Service struct {
	gw         ContractGateway
	registry   *asset.Registry
	prices     PriceSource
	passphrase string
	logger     logger.LoggerInterface
}

// NewService creates an account Service.
func NewService(gw ContractGateway, registry *asset.Registry, prices PriceSource, cfg ServiceConfig, log logger.LoggerInterface) *Service {
	return &Service{
		gw:         gw,
		registry:   registry,
		prices:     prices,
		passphrase: cfg.NetworkPassphrase,
		logger:     log,
	}
}

// Config fetches the user's on-chain trading configuration. Amounts
// stay raw, matching the contract's integer representation.
func (s *Service) Config(ctx context.Context, user string) (*domain.UserConfig, error) {
	userArg, err := addressArg(user)
	if err != nil {
		return nil, err
	}

	val, err := s.gw.Read(ctx, "get_user_config", userArg)
	if err != nil {
		return nil, err
	}

	m, _ := scval.Parse(val).(map[string]any)
	return &domain.UserConfig{
		Enabled:              asBool(m["enabled"]),
		MaxGasPrice:          rawAmount(m["max_gas_price"]),
		MaxTradeSize:         rawAmount(m["max_trade_size"]),
		MinLiquidity:         rawAmount(m["min_liquidity"]),
		MinProfitBps:         asInt64(m["min_profit_bps"]),
		SlippageToleranceBps: asInt64(m["slippage_tolerance_bps"]),
	}, nil
}

// CheckInitialized probes the user's account by fetching its config.
// The contract signals a missing account through its error text; that
// case is a normal answer, not a failure.
func (s *Service) CheckInitialized(ctx context.Context, user string) (bool, error) {
	_, err := s.Config(ctx, user)
	if err == nil {
		return true, nil
	}
	if apperror.IsNotInitialized(err) {
		return false, nil
	}
	return false, err
}

// Initialize prepares the account-creation transaction for signing.
func (s *Service) Initialize(ctx context.Context, user string, cfg domain.UserConfig, limits domain.RiskLimits) (string, error) {
	userArg, err := addressArg(user)
	if err != nil {
		return "", err
	}
	configArg, err := userConfigArg(cfg)
	if err != nil {
		return "", err
	}
	limitsArg, err := riskLimitsArg(limits)
	if err != nil {
		return "", err
	}

	return s.gw.Prepare(ctx, user, "initialize_user_account", userArg, configArg, limitsArg)
}

// UpdateConfig prepares a configuration-update transaction for signing.
func (s *Service) UpdateConfig(ctx context.Context, user string, cfg domain.UserConfig) (string, error) {
	userArg, err := addressArg(user)
	if err != nil {
		return "", err
	}
	configArg, err := userConfigArg(cfg)
	if err != nil {
		return "", err
	}

	return s.gw.Prepare(ctx, user, "update_user_config", userArg, configArg)
}

// TradeHistory fetches the user's recent trades with amounts
// normalized for display.
func (s *Service) TradeHistory(ctx context.Context, user string, limit uint32) ([]domain.TradeRecord, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	userArg, err := addressArg(user)
	if err != nil {
		return nil, err
	}

	val, err := s.gw.Read(ctx, "get_user_trade_history", userArg, u32Arg(limit))
	if err != nil {
		return nil, err
	}

	trades := []domain.TradeRecord{}
	for _, parsed := range scval.ParseVec(val) {
		m, ok := parsed.(map[string]any)
		if !ok {
			continue
		}

		record := domain.TradeRecord{
			ExecutedAmount:     fixedpoint.NormalizeAny(m["executed_amount"], asset.StroopDecimals),
			ActualProfit:       fixedpoint.NormalizeAny(m["actual_profit"], asset.StroopDecimals),
			GasCost:            fixedpoint.NormalizeAny(m["gas_cost"], asset.StroopDecimals),
			ExecutionTimestamp: rawAmount(m["execution_timestamp"]),
			Status:             m["status"],
		}
		if opp, ok := m["opportunity"].(map[string]any); ok {
			record.Opportunity = domain.TradeOpportunity{
				Pair:            opp["pair"],
				StablecoinPrice: fixedpoint.NormalizeAny(opp["stablecoin_price"], asset.StroopDecimals),
				FiatRate:        fixedpoint.NormalizeAny(opp["fiat_rate"], asset.StroopDecimals),
				DeviationBps:    asInt64(opp["deviation_bps"]),
				EstimatedProfit: fixedpoint.NormalizeAny(opp["estimated_profit"], asset.StroopDecimals),
				TradeDirection:  asString(opp["trade_direction"]),
				Timestamp:       rawAmount(opp["timestamp"]),
			}
		}
		trades = append(trades, record)
	}
	return trades, nil
}

// Balances fetches the user's holdings and prices them in USD.
func (s *Service) Balances(ctx context.Context, user string) (*domain.BalanceSheet, error) {
	userArg, err := addressArg(user)
	if err != nil {
		return nil, err
	}

	val, err := s.gw.Read(ctx, "get_user_balances", userArg)
	if err != nil {
		return nil, err
	}

	sheet := &domain.BalanceSheet{
		Balances:           map[string]string{},
		BalancesWithPrices: map[string]domain.TokenBalance{},
		TokenPrices:        map[string]string{},
	}

	raw, _ := scval.Parse(val).(map[string]any)
	total := decimal.Zero

	for key, v := range raw {
		token := canonicalToken(key)
		balance := rawAmount(v)
		sheet.Balances[token] = balance

		normalized, err := decimal.NewFromString(fixedpoint.NormalizeAny(v, asset.StroopDecimals))
		if err != nil {
			normalized = decimal.Zero
		}

		a := s.registry.Resolve(token)
		price := a.FallbackUSD
		if s.prices != nil && a.CoinGeckoID != "" {
			price = s.prices.USDPrice(ctx, a.Symbol)
		}

		usdValue := normalized.Mul(price)
		total = total.Add(usdValue)

		sheet.TokenPrices[token] = price.String()
		sheet.BalancesWithPrices[token] = domain.TokenBalance{
			Balance:  normalized.StringFixed(fixedpoint.DisplayDecimals),
			USDValue: usdValue.StringFixed(2),
			Price:    price.String(),
		}
	}

	sheet.PortfolioValue = total.StringFixed(2)
	return sheet, nil
}

// UserMetrics fetches per-user performance metrics with normalized
// amounts and derived rates.
func (s *Service) UserMetrics(ctx context.Context, user string, days uint32) (*domain.PerformanceMetrics, error) {
	if days == 0 {
		days = DefaultMetricsDays
	}

	userArg, err := addressArg(user)
	if err != nil {
		return nil, err
	}

	val, err := s.gw.Read(ctx, "get_user_performance_metrics", userArg, u32Arg(days))
	if err != nil {
		return nil, err
	}

	return buildMetrics(val, days, true), nil
}

// BotMetrics fetches bot-wide performance metrics. Amounts stay raw.
func (s *Service) BotMetrics(ctx context.Context, days uint32) (*domain.PerformanceMetrics, error) {
	if days == 0 {
		days = DefaultMetricsDays
	}

	val, err := s.gw.Read(ctx, "get_performance_metrics", u32Arg(days))
	if err != nil {
		return nil, err
	}

	return buildMetrics(val, days, false), nil
}

func buildMetrics(val *scval.Value, days uint32, normalize bool) *domain.PerformanceMetrics {
	m, _ := scval.Parse(val).(map[string]any)

	amount := rawAmount
	if normalize {
		amount = func(v any) string { return fixedpoint.NormalizeAny(v, asset.StroopDecimals) }
	}

	metrics := &domain.PerformanceMetrics{
		TotalTrades:       asInt64(m["total_trades"]),
		SuccessfulTrades:  asInt64(m["successful_trades"]),
		TotalProfit:       amount(m["total_profit"]),
		TotalVolume:       amount(m["total_volume"]),
		SuccessRateBps:    asInt64(m["success_rate_bps"]),
		AvgProfitPerTrade: amount(m["avg_profit_per_trade"]),
		PeriodDays:        asInt64(m["period_days"]),
		SuccessRate:       "0.00",
		WinRate:           "0.00",
	}
	if metrics.PeriodDays == 0 {
		metrics.PeriodDays = int64(days)
	}
	if metrics.SuccessRateBps != 0 {
		metrics.SuccessRate = decimal.NewFromInt(metrics.SuccessRateBps).Div(decimal.NewFromInt(100)).StringFixed(2)
	}
	if metrics.TotalTrades > 0 {
		metrics.WinRate = decimal.NewFromInt(metrics.SuccessfulTrades).
			Div(decimal.NewFromInt(metrics.TotalTrades)).
			Mul(decimal.NewFromInt(100)).
			StringFixed(2)
	}
	return metrics
}

// Deposit prepares a fund-deposit transaction. Classic asset
// identifiers are resolved to their Stellar Asset Contract address.
func (s *Service) Deposit(ctx context.Context, user, token, amount string, isNative bool, assetCode string) (string, error) {
	return s.prepareTransfer(ctx, "deposit_user_funds", user, token, amount, isNative, assetCode)
}

// Withdraw prepares a fund-withdrawal transaction.
func (s *Service) Withdraw(ctx context.Context, user, token, amount string, isNative bool, assetCode string) (string, error) {
	return s.prepareTransfer(ctx, "withdraw_user_funds", user, token, amount, isNative, assetCode)
}

func (s *Service) prepareTransfer(ctx context.Context, method, user, token, amount string, isNative bool, assetCode string) (string, error) {
	tokenAddress := s.resolveTokenContract(ctx, token, isNative, assetCode)

	userArg, err := addressArg(user)
	if err != nil {
		return "", err
	}
	tokenArg, err := addressArg(tokenAddress)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(tokenAddress), apperror.WithCause(err))
	}
	amountArg, err := i128FromString(amount)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext(amount), apperror.WithCause(err))
	}

	s.logger.Debug(ctx, "preparing fund transfer",
		"method", method, "token", tokenAddress, "amount", amount)
	return s.gw.Prepare(ctx, user, method, userArg, tokenArg, amountArg)
}

// DeploySAC prepares a Stellar Asset Contract deployment for the
// native asset or a classic issued asset. The contract address is the
// asset's deterministic SAC id on this network.
func (s *Service) DeploySAC(ctx context.Context, user, assetType, assetCode, issuer string) (*domain.SACDeployment, error) {
	var a xdr.Asset
	code := assetCode
	kind := assetType

	if assetType == "native" || assetCode == "XLM" {
		a = xdr.MustNewNativeAsset()
		code = "XLM"
		kind = "native"
	} else {
		credit, err := xdr.NewCreditAsset(assetCode, issuer)
		if err != nil {
			return nil, apperror.New(apperror.CodeInvalidInput,
				apperror.WithContext(assetCode), apperror.WithCause(err))
		}
		a = credit
		if kind == "" {
			kind = "issued"
		}
	}

	id, err := a.ContractID(s.passphrase)
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext(code), apperror.WithCause(err))
	}

	envelope, err := s.gw.PrepareSACDeployment(ctx, user, a)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "prepared sac deployment", "code", code, "type", kind)
	return &domain.SACDeployment{
		TransactionXDR:  envelope,
		ContractAddress: mustContractStrkey(id),
		AssetCode:       code,
		AssetType:       kind,
	}, nil
}

// resolveTokenContract maps a token identifier to its SAC contract
// address: the native asset's SAC for XLM, the derived SAC for classic
// issued assets, and the identifier unchanged when it already is a
// contract address.
func (s *Service) resolveTokenContract(ctx context.Context, token string, isNative bool, assetCode string) string {
	if isNative {
		native := xdr.MustNewNativeAsset()
		if id, err := native.ContractID(s.passphrase); err == nil {
			return mustContractStrkey(id)
		}
		return asset.ContractXLM
	}

	if _, err := strkey.Decode(strkey.VersionByteContract, token); err == nil {
		return token
	}

	code := assetCode
	if known, ok := s.registry.ByIssuer(token); ok {
		code = known.Symbol
	}
	if code == "" {
		code = "USDC"
	}

	credit, err := xdr.NewCreditAsset(code, token)
	if err != nil {
		s.logger.Warn(ctx, "asset resolution failed, using identifier as-is",
			"token", token, "code", code, "error", err)
		return token
	}
	id, err := credit.ContractID(s.passphrase)
	if err != nil {
		s.logger.Warn(ctx, "asset contract derivation failed, using identifier as-is",
			"token", token, "code", code, "error", err)
		return token
	}
	return mustContractStrkey(id)
}

// NativeContractAddress returns the network's native asset SAC
// address, used in deployment guidance messages.
func (s *Service) NativeContractAddress() string {
	native := xdr.MustNewNativeAsset()
	if id, err := native.ContractID(s.passphrase); err == nil {
		return mustContractStrkey(id)
	}
	return asset.ContractXLM
}

func mustContractStrkey(id xdr.Hash) string {
	out, err := strkey.Encode(strkey.VersionByteContract, id[:])
	if err != nil {
		panic(err)
	}
	return out
}
