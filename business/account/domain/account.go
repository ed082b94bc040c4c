// Package domain contains the core domain types for the account context.
package domain

// UserConfig is a user's trading configuration as stored on-chain.
// Amount fields are raw contract integers rendered as strings.
type UserConfig struct {
	Enabled              bool   `json:"enabled"`
	MaxGasPrice          string `json:"max_gas_price"`
	MaxTradeSize         string `json:"max_trade_size"`
	MinLiquidity         string `json:"min_liquidity"`
	MinProfitBps         int64  `json:"min_profit_bps"`
	SlippageToleranceBps int64  `json:"slippage_tolerance_bps"`
}

// RiskLimits caps a user's exposure.
type RiskLimits struct {
	MaxDailyVolume  string `json:"max_daily_volume"`
	MaxPositionSize string `json:"max_position_size"`
	MaxDrawdownBps  int64  `json:"max_drawdown_bps"`
	VarLimit        string `json:"var_limit"`
}

// TradeOpportunity is the opportunity snapshot embedded in a trade
// record, with prices normalized for display.
type TradeOpportunity struct {
	Pair            any    `json:"pair"`
	StablecoinPrice string `json:"stablecoin_price"`
	FiatRate        string `json:"fiat_rate"`
	DeviationBps    int64  `json:"deviation_bps"`
	EstimatedProfit string `json:"estimated_profit"`
	TradeDirection  string `json:"trade_direction"`
	Timestamp       string `json:"timestamp"`
}

// TradeRecord is one executed trade from the user's history.
type TradeRecord struct {
	ExecutedAmount     string           `json:"executed_amount"`
	ActualProfit       string           `json:"actual_profit"`
	GasCost            string           `json:"gas_cost"`
	ExecutionTimestamp string           `json:"execution_timestamp"`
	Status             any              `json:"status"`
	Opportunity        TradeOpportunity `json:"opportunity"`
}

// PerformanceMetrics aggregates trading results over a period. User
// metrics carry normalized amounts; bot metrics carry raw integers.
type PerformanceMetrics struct {
	TotalTrades       int64  `json:"total_trades"`
	SuccessfulTrades  int64  `json:"successful_trades"`
	TotalProfit       string `json:"total_profit"`
	TotalVolume       string `json:"total_volume"`
	SuccessRateBps    int64  `json:"success_rate_bps"`
	AvgProfitPerTrade string `json:"avg_profit_per_trade"`
	PeriodDays        int64  `json:"period_days"`
	SuccessRate       string `json:"success_rate"`
	WinRate           string `json:"win_rate"`
}

// SACDeployment is a prepared Stellar Asset Contract deployment,
// ready for wallet signing.
type SACDeployment struct {
	TransactionXDR  string `json:"transactionXdr"`
	ContractAddress string `json:"contractAddress"`
	AssetCode       string `json:"assetCode"`
	AssetType       string `json:"assetType"`
}

// TokenBalance is one token position priced in USD.
type TokenBalance struct {
	Balance  string `json:"balance"`
	USDValue string `json:"usdValue"`
	Price    string `json:"price"`
}

// BalanceSheet is the user's full holdings view.
type BalanceSheet struct {
	Balances           map[string]string       `json:"balances"`
	BalancesWithPrices map[string]TokenBalance `json:"balancesWithPrices"`
	TokenPrices        map[string]string       `json:"tokenPrices"`
	PortfolioValue     string                  `json:"portfolioValue"`
}
