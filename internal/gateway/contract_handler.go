package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/stablearb/arbgate/business/account/domain"
	"github.com/stablearb/arbgate/internal/apperror"
)

// contractRequest is the action envelope posted by the web UI.
type contractRequest struct {
	Action      string `json:"action"`
	UserAddress string `json:"userAddress"`

	// get_user_trade_history / performance metrics
	Limit uint32 `json:"limit"`
	Days  uint32 `json:"days"`

	// initialize_user_account / update_user_config
	InitialConfig *accountdomain.UserConfig `json:"initialConfig"`
	NewConfig     *accountdomain.UserConfig `json:"newConfig"`
	RiskLimits    *accountdomain.RiskLimits `json:"riskLimits"`

	// deposit_user_funds / withdraw_user_funds
	TokenAddress string `json:"tokenAddress"`
	Amount       string `json:"amount"`
	IsNative     *bool  `json:"isNative"`
	AssetCode    string `json:"assetCode"`
}

// handleContract dispatches POST /api/contract by action name.
func (s *Server) handleContract(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Invalid request body")
		return
	}

	switch req.Action {
	case "scan_advanced_opportunities":
		s.scanAdvanced(c)
	case "scan_opportunities":
		s.scanBasic(c)
	case "get_pairs":
		s.getPairs(c)
	case "get_user_config":
		s.getUserConfig(c, req)
	case "update_user_config":
		s.updateUserConfig(c, req)
	case "initialize_user_account":
		s.initializeUserAccount(c, req)
	case "check_user_initialized":
		s.checkUserInitialized(c, req)
	case "get_user_trade_history":
		s.getUserTradeHistory(c, req)
	case "get_user_balances":
		s.getUserBalances(c, req)
	case "get_user_performance_metrics":
		s.getUserMetrics(c, req)
	case "get_performance_metrics":
		s.getBotMetrics(c, req)
	case "deposit_user_funds":
		s.transferFunds(c, req, true)
	case "withdraw_user_funds":
		s.transferFunds(c, req, false)
	default:
		failValidation(c, "Invalid action")
	}
}

func (s *Server) scanAdvanced(c *gin.Context) {
	result, err := s.scanner.ScanAdvanced(c.Request.Context())
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message":       "Advanced opportunities scanned successfully!",
		"opportunities": result.Opportunities,
		"count":         result.Count,
		"timestamp":     result.Timestamp,
	})
}

func (s *Server) scanBasic(c *gin.Context) {
	result, err := s.scanner.ScanBasic(c.Request.Context())
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message":       "Basic opportunities scanned successfully!",
		"opportunities": result.Opportunities,
		"count":         result.Count,
		"timestamp":     result.Timestamp,
	})
}

func (s *Server) getPairs(c *gin.Context) {
	pairs, err := s.scanner.Pairs(c.Request.Context())
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message": "Pairs fetched successfully!",
		"pairs":   pairs,
		"count":   len(pairs),
	})
}

func (s *Server) getUserConfig(c *gin.Context, req contractRequest) {
	cfg, err := s.accounts.Config(c.Request.Context(), req.UserAddress)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message": "User config fetched successfully!",
		"config":  cfg,
	})
}

func (s *Server) updateUserConfig(c *gin.Context, req contractRequest) {
	if req.NewConfig == nil {
		failValidation(c, "newConfig is required")
		return
	}
	xdr, err := s.accounts.UpdateConfig(c.Request.Context(), req.UserAddress, *req.NewConfig)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message":        "Update transaction prepared for signing",
		"transactionXdr": xdr,
	})
}

func (s *Server) initializeUserAccount(c *gin.Context, req contractRequest) {
	if req.InitialConfig == nil || req.RiskLimits == nil {
		failValidation(c, "initialConfig and riskLimits are required")
		return
	}
	xdr, err := s.accounts.Initialize(c.Request.Context(), req.UserAddress, *req.InitialConfig, *req.RiskLimits)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message":        "Transaction prepared for signing",
		"transactionXdr": xdr,
	})
}

func (s *Server) checkUserInitialized(c *gin.Context, req contractRequest) {
	initialized, err := s.accounts.CheckInitialized(c.Request.Context(), req.UserAddress)
	if err != nil {
		c.JSON(http.StatusOK, apiResponse{
			Success: false,
			Error:   "Error checking user initialization: " + errorMessage(err),
		})
		return
	}

	message := "User is initialized"
	if !initialized {
		message = "User not initialized"
	}
	ok(c, gin.H{
		"isInitialized": initialized,
		"message":       message,
	})
}

func (s *Server) getUserTradeHistory(c *gin.Context, req contractRequest) {
	trades, err := s.accounts.TradeHistory(c.Request.Context(), req.UserAddress, req.Limit)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message": "Trade history fetched successfully!",
		"trades":  trades,
		"count":   len(trades),
	})
}

func (s *Server) getUserBalances(c *gin.Context, req contractRequest) {
	if req.UserAddress == "" {
		failValidation(c, "User address required for getting balances")
		return
	}

	sheet, err := s.accounts.Balances(c.Request.Context(), req.UserAddress)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message":            "User balances with USD prices fetched successfully!",
		"balances":           sheet.Balances,
		"balancesWithPrices": sheet.BalancesWithPrices,
		"tokenPrices":        sheet.TokenPrices,
		"portfolioValue":     sheet.PortfolioValue,
	})
}

func (s *Server) getUserMetrics(c *gin.Context, req contractRequest) {
	if req.UserAddress == "" {
		failValidation(c, "User address required for performance metrics")
		return
	}

	metrics, err := s.accounts.UserMetrics(c.Request.Context(), req.UserAddress, req.Days)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message": "User performance metrics fetched successfully!",
		"metrics": metrics,
	})
}

func (s *Server) getBotMetrics(c *gin.Context, req contractRequest) {
	metrics, err := s.accounts.BotMetrics(c.Request.Context(), req.Days)
	if err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{
		"message": "Bot performance metrics fetched successfully!",
		"metrics": metrics,
	})
}

func (s *Server) transferFunds(c *gin.Context, req contractRequest, deposit bool) {
	// The UI omits isNative for plain XLM deposits.
	isNative := true
	if req.IsNative != nil {
		isNative = *req.IsNative
	}

	ctx := c.Request.Context()
	var (
		xdr string
		err error
	)
	if deposit {
		xdr, err = s.accounts.Deposit(ctx, req.UserAddress, req.TokenAddress, req.Amount, isNative, req.AssetCode)
	} else {
		xdr, err = s.accounts.Withdraw(ctx, req.UserAddress, req.TokenAddress, req.Amount, isNative, req.AssetCode)
	}

	if err != nil {
		if apperror.IsTokenNotDeployed(err) {
			c.JSON(http.StatusBadRequest, apiResponse{
				Success: false,
				Error:   "Native XLM Stellar Asset Contract needs to be deployed. Please deploy the SAC first or contact support.",
				Details: gin.H{
					"suggestion":            "The native XLM Stellar Asset Contract (SAC) has not been deployed on this network. This is required for token transfers.",
					"nativeContractAddress": s.accounts.NativeContractAddress(),
				},
			})
			return
		}
		failContract(c, err)
		return
	}

	message := "Deposit transaction prepared for signing"
	if !deposit {
		message = "Withdrawal transaction prepared for signing"
	}
	ok(c, gin.H{
		"message":        message,
		"transactionXdr": xdr,
	})
}
