package gateway

import (
	"github.com/gin-gonic/gin"

	daodomain "github.com/stablearb/arbgate/business/dao/domain"
)

// daoRequest is the action envelope for POST /api/dao.
type daoRequest struct {
	Action string `json:"action"`

	// create_proposal
	Proposer     string         `json:"proposer"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ProposalType string         `json:"proposal_type"`
	ProposalData map[string]any `json:"proposal_data"`

	// vote
	Voter      string `json:"voter"`
	ProposalID uint64 `json:"proposal_id"`
	VoteYes    bool   `json:"vote_yes"`

	// stake_kale / get_stake
	Staker string `json:"staker"`
	Amount string `json:"amount"`
	User   string `json:"user"`

	// submit
	SignedXDR string `json:"signedXdr"`
}

// handleDAO dispatches POST /api/dao by action name.
func (s *Server) handleDAO(c *gin.Context) {
	var req daoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "get_active_proposals":
		ok(c, gin.H{"proposals": s.dao.ActiveProposals(ctx)})

	case "create_proposal":
		xdr, err := s.dao.CreateProposal(ctx, daodomain.ProposalDraft{
			Proposer:     req.Proposer,
			Title:        req.Title,
			Description:  req.Description,
			ProposalType: req.ProposalType,
			ProposalData: req.ProposalData,
		})
		if err != nil {
			failContract(c, err)
			return
		}
		ok(c, gin.H{"transactionXdr": xdr})

	case "vote":
		xdr, err := s.dao.Vote(ctx, req.Voter, req.ProposalID, req.VoteYes)
		if err != nil {
			failContract(c, err)
			return
		}
		ok(c, gin.H{"transactionXdr": xdr})

	case "stake_kale":
		xdr, err := s.dao.StakeKale(ctx, req.Staker, req.Amount)
		if err != nil {
			failContract(c, err)
			return
		}
		ok(c, gin.H{"transactionXdr": xdr})

	case "get_stake":
		amount, err := s.dao.Stake(ctx, req.User)
		if err != nil {
			failContract(c, err)
			return
		}
		ok(c, gin.H{"amount": amount})

	case "submit":
		if req.SignedXDR == "" {
			failValidation(c, "signedXdr is required")
			return
		}
		result, err := s.dao.Submit(ctx, req.SignedXDR)
		if err != nil {
			failContract(c, err)
			return
		}
		ok(c, gin.H{"hash": result.Hash, "status": result.Status})

	default:
		failValidation(c, "Invalid DAO action")
	}
}
