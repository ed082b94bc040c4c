package gateway

import (
	"github.com/gin-gonic/gin"
)

type submitRequest struct {
	SignedXDR string `json:"signedXdr"`
}

// handleSubmit sends a signed envelope and waits for finality.
func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Invalid request body")
		return
	}
	if req.SignedXDR == "" {
		failValidation(c, "signedXdr is required")
		return
	}

	ctx := c.Request.Context()
	sent, err := s.rpc.SendTransaction(ctx, req.SignedXDR)
	if err != nil {
		failContract(c, err)
		return
	}

	final, err := s.rpc.AwaitTransaction(ctx, sent.Hash)
	if err != nil {
		failContract(c, err)
		return
	}

	ok(c, gin.H{
		"hash":    sent.Hash,
		"status":  final.Status,
		"ledger":  final.Ledger,
		"message": "Transaction submitted successfully",
	})
}
