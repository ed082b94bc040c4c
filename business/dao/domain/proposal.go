// Package domain contains the core domain types for the dao context.
package domain

// Proposal is a governance proposal as read from the DAO contract.
type Proposal struct {
	ID             int64  `json:"id"`
	Proposer       string `json:"proposer"`
	ProposalType   string `json:"proposal_type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	CreatedAt      int64  `json:"created_at"`
	VotingEndsAt   int64  `json:"voting_ends_at"`
	YesVotes       string `json:"yes_votes"`
	NoVotes        string `json:"no_votes"`
	Status         string `json:"status"`
	QuorumRequired string `json:"quorum_required"`
}

// ProposalDraft is the caller-supplied input for a new proposal.
type ProposalDraft struct {
	Proposer     string         `json:"proposer"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ProposalType string         `json:"proposal_type"`
	ProposalData map[string]any `json:"proposal_data"`
}
