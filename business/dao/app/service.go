package app

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/business/dao/domain"
	"github.com/stablearb/arbgate/internal/apperror"
	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/scval"
	"github.com/stablearb/arbgate/internal/soroban"
)

// Optional proposal payload fields expected by the contract. Omitted
// fields are encoded as None.
var proposalDataFields = []string{
	"admin_address",
	"config_data",
	"generic_data",
	"pair_data",
	"symbol_data",
	"venue_data",
}

// Service exposes the DAO governance operations: reading proposals and
// stakes, and preparing proposal, vote and staking transactions.
type Service struct {
	gw     ContractGateway
	logger logger.LoggerInterface
}

// NewService creates a DAO Service.
func NewService(gw ContractGateway, log logger.LoggerInterface) *Service {
	return &Service{gw: gw, logger: log}
}

// ActiveProposals reads the open proposals. A failing read degrades to
// an empty list so the governance page renders without proposals
// rather than erroring.
func (s *Service) ActiveProposals(ctx context.Context) []domain.Proposal {
	val, err := s.gw.Read(ctx, "get_active_proposals")
	if err != nil {
		s.logger.Warn(ctx, "proposal read failed, serving empty list", "error", err)
		return []domain.Proposal{}
	}

	proposals := []domain.Proposal{}
	for _, parsed := range scval.ParseVec(val) {
		m, ok := parsed.(map[string]any)
		if !ok {
			continue
		}
		proposals = append(proposals, domain.Proposal{
			ID:             asInt64(m["id"]),
			Proposer:       asString(m["proposer"]),
			ProposalType:   enumTag(m["proposal_type"]),
			Title:          asString(m["title"]),
			Description:    asString(m["description"]),
			CreatedAt:      asInt64(m["created_at"]),
			VotingEndsAt:   asInt64(m["voting_ends_at"]),
			YesVotes:       rawAmount(m["yes_votes"]),
			NoVotes:        rawAmount(m["no_votes"]),
			Status:         enumTag(m["status"]),
			QuorumRequired: rawAmount(m["quorum_required"]),
		})
	}
	return proposals
}

// CreateProposal prepares a proposal-creation transaction for signing.
func (s *Service) CreateProposal(ctx context.Context, draft domain.ProposalDraft) (string, error) {
	proposerArg, err := soroban.AddressArg(draft.Proposer)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(draft.Proposer), apperror.WithCause(err))
	}

	fields := make([]soroban.Field, 0, len(proposalDataFields))
	for _, name := range proposalDataFields {
		fields = append(fields, soroban.Field{
			Name: name,
			Val:  optionValue(draft.ProposalData[name]),
		})
	}

	return s.gw.Prepare(ctx, draft.Proposer, "create_proposal",
		proposerArg,
		soroban.VecArg(soroban.SymArg(draft.ProposalType)),
		soroban.StringArg(draft.Title),
		soroban.StringArg(draft.Description),
		soroban.StructArg(fields...),
	)
}

// Vote prepares a vote transaction for signing.
func (s *Service) Vote(ctx context.Context, voter string, proposalID uint64, voteYes bool) (string, error) {
	voterArg, err := soroban.AddressArg(voter)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(voter), apperror.WithCause(err))
	}

	return s.gw.Prepare(ctx, voter, "vote",
		voterArg, soroban.U64Arg(proposalID), soroban.BoolArg(voteYes))
}

// StakeKale prepares a staking transaction. The amount arrives in
// display units and is scaled to stroops.
func (s *Service) StakeKale(ctx context.Context, staker, amount string) (string, error) {
	stakerArg, err := soroban.AddressArg(staker)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(staker), apperror.WithCause(err))
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext(amount), apperror.WithCause(err))
	}
	scaled := d.Shift(asset.StroopDecimals).Floor().BigInt()

	amountArg, err := soroban.I128Arg(scaled)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext(amount), apperror.WithCause(err))
	}

	return s.gw.Prepare(ctx, staker, "stake_kale", stakerArg, amountArg)
}

// Stake reads a user's staked amount in raw stroops.
func (s *Service) Stake(ctx context.Context, user string) (string, error) {
	userArg, err := soroban.AddressArg(user)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(user), apperror.WithCause(err))
	}

	val, err := s.gw.Read(ctx, "get_stake", userArg)
	if err != nil {
		return "", err
	}
	return rawAmount(scval.Parse(val)), nil
}

// Submit sends a signed envelope to the network.
func (s *Service) Submit(ctx context.Context, signedXDR string) (*soroban.SendResult, error) {
	return s.gw.Submit(ctx, signedXDR)
}

// optionValue encodes an optional proposal payload field. Addresses
// and text are supported; anything else (including absence) becomes
// None.
func optionValue(v any) xdr.ScVal {
	s, ok := v.(string)
	if !ok || s == "" {
		return soroban.VoidArg()
	}
	if arg, err := soroban.AddressArg(s); err == nil {
		return arg
	}
	return soroban.StringArg(s)
}
