package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// deployRequest is the POST /api/deploy-sac body.
type deployRequest struct {
	UserAddress   string `json:"userAddress"`
	AssetType     string `json:"assetType"`
	AssetCode     string `json:"assetCode"`
	IssuerAddress string `json:"issuerAddress"`
}

// handleDeploySAC prepares a Stellar Asset Contract deployment
// transaction for wallet signing, for the native asset or a classic
// issued asset.
func (s *Server) handleDeploySAC(c *gin.Context) {
	var req deployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Invalid request body")
		return
	}
	if req.UserAddress == "" {
		failValidation(c, "User address is required")
		return
	}

	native := req.AssetType == "native" || req.AssetCode == "XLM"
	if !native && (req.AssetCode == "" || req.IssuerAddress == "") {
		failValidation(c, "For non-native assets, both assetCode and issuerAddress are required")
		return
	}

	deployment, err := s.accounts.DeploySAC(c.Request.Context(),
		req.UserAddress, req.AssetType, req.AssetCode, req.IssuerAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apiResponse{
			Success: false,
			Error:   "Failed to prepare SAC deployment: " + errorMessage(err),
		})
		return
	}

	ok(c, gin.H{
		"message":         deployment.AssetCode + " Stellar Asset Contract deployment transaction prepared",
		"transactionXdr":  deployment.TransactionXDR,
		"contractAddress": deployment.ContractAddress,
		"assetCode":       deployment.AssetCode,
		"assetType":       deployment.AssetType,
	})
}
