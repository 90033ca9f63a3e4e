package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"
)

type SubmitterConfig struct {
	Ledger        Ledger
	MaxWaitRounds uint64
	Logger        *zap.Logger
	Metrics       *Metrics
}

// Submitter sends signed payloads and waits for their confirmation. It keeps
// no state between calls and is safe for concurrent use when its Ledger is.
type Submitter struct {
	ledger        Ledger
	maxWaitRounds uint64
	logger        *zap.Logger
	metrics       *Metrics
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(config SubmitterConfig) (*Submitter, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}

	maxWaitRounds := config.MaxWaitRounds
	if maxWaitRounds == 0 {
		maxWaitRounds = DefaultMaxWaitRounds
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Submitter{
		ledger:        config.Ledger,
		maxWaitRounds: maxWaitRounds,
		logger:        logger,
		metrics:       config.Metrics,
	}, nil
}

func (s *Submitter) Ledger() Ledger {
	return s.ledger
}

func (s *Submitter) MaxWaitRounds() uint64 {
	return s.maxWaitRounds
}

// Submit sends one signed transaction, or every member of one atomic group in
// group order, as a single network call and waits for confirmation.
func (s *Submitter) Submit(ctx context.Context, signed ...txn.SignedTransaction) (ConfirmationResult, error) {
	payloadKind := payloadSingle
	if len(signed) > 1 {
		payloadKind = payloadGroup
	}

	groupID, err := validatePayload(signed)
	if err != nil {
		s.metrics.observeSubmission(payloadKind, outcomeInvalid)
		return ConfirmationResult{}, err
	}

	first := signed[0]
	logger := s.logger.With(
		zap.String("txid", first.TxID),
		zap.String("kind", string(first.Kind)),
		zap.Int("size", len(signed)),
	)
	if groupID != (types.Digest{}) {
		logger = logger.With(zap.Binary("group", groupID[:]))
	}

	submittedRound, err := s.ledger.Status(ctx)
	if err != nil {
		s.metrics.observeSubmission(payloadKind, outcomeError)
		return ConfirmationResult{}, err
	}

	returnedTxID, err := s.ledger.SendRawTransaction(ctx, txn.EncodePayload(signed))
	if err != nil {
		s.metrics.observeSubmission(payloadKind, classifyOutcome(err))
		logger.Warn("submission failed", zap.Error(err))
		return ConfirmationResult{}, err
	}
	if returnedTxID != "" && returnedTxID != first.TxID {
		logger.Warn("node returned unexpected transaction ID", zap.String("returned", returnedTxID))
	}
	logger.Info("transaction submitted", zap.Uint64("round", submittedRound))

	confirmed, err := WaitForConfirmation(ctx, s.ledger, first.TxID, s.maxWaitRounds)
	if err != nil {
		s.metrics.observeSubmission(payloadKind, classifyOutcome(err))
		logger.Warn("confirmation failed", zap.Error(err))
		return ConfirmationResult{}, err
	}

	result := ConfirmationResult{
		TxID:           first.TxID,
		ConfirmedRound: confirmed.ConfirmedRound,
		AssetIndex:     confirmed.AssetIndex,
		GroupID:        groupID,
		Members: []MemberResult{{
			TxID:           first.TxID,
			ConfirmedRound: confirmed.ConfirmedRound,
			AssetIndex:     confirmed.AssetIndex,
			Fee:            uint64(first.Txn.Fee),
		}},
	}

	for _, member := range signed[1:] {
		memberResult, err := s.confirmGroupMember(ctx, member, confirmed.ConfirmedRound)
		if err != nil {
			s.metrics.observeSubmission(payloadKind, classifyOutcome(err))
			logger.Warn("group member not confirmed with group", zap.String("member", member.TxID), zap.Error(err))
			return ConfirmationResult{}, err
		}
		result.Members = append(result.Members, memberResult)
	}

	s.metrics.observeSubmission(payloadKind, outcomeConfirmed)
	if confirmed.ConfirmedRound >= submittedRound {
		s.metrics.observeConfirmation(confirmed.ConfirmedRound - submittedRound)
	}
	logger.Info("transaction confirmed",
		zap.Uint64("confirmed_round", confirmed.ConfirmedRound),
		zap.Uint64("asset_index", confirmed.AssetIndex),
	)

	return result, nil
}

func (s *Submitter) confirmGroupMember(ctx context.Context, member txn.SignedTransaction, groupRound uint64) (MemberResult, error) {
	pending, err := s.ledger.PendingTransaction(ctx, member.TxID)
	if err != nil {
		return MemberResult{}, err
	}
	if pending.PoolError != "" {
		return MemberResult{}, NewRejectedByNetworkError(member.TxID, pending.PoolError, nil)
	}
	if pending.ConfirmedRound != groupRound {
		return MemberResult{}, NewPartialGroupError(member.TxID, groupRound, pending.ConfirmedRound)
	}

	return MemberResult{
		TxID:           member.TxID,
		ConfirmedRound: pending.ConfirmedRound,
		AssetIndex:     pending.AssetIndex,
		Fee:            uint64(member.Txn.Fee),
	}, nil
}

func validatePayload(signed []txn.SignedTransaction) (types.Digest, error) {
	if len(signed) == 0 {
		return types.Digest{}, txn.NewInvalidGroupInputError(-1, "at least one signed transaction is required")
	}
	if len(signed) > txn.MaxGroupSize {
		return types.Digest{}, txn.NewInvalidGroupInputError(-1, "group has %d transactions, maximum is %d", len(signed), txn.MaxGroupSize)
	}
	for index, member := range signed {
		if len(member.Blob) == 0 || member.TxID == "" {
			return types.Digest{}, txn.NewInvalidGroupInputError(index, "transaction %d is not signed", index)
		}
	}

	groupID := signed[0].Group()
	if len(signed) == 1 {
		return groupID, nil
	}
	if groupID == (types.Digest{}) {
		return types.Digest{}, txn.NewInvalidGroupInputError(0, "transaction 0 has no group")
	}
	for index, member := range signed[1:] {
		if member.Group() != groupID {
			return types.Digest{}, txn.NewInvalidGroupInputError(index+1, "transaction %d is not part of group %x", index+1, groupID[:])
		}
	}

	return groupID, nil
}

func classifyOutcome(err error) string {
	switch {
	case errors.Is(err, ErrRejectedByNetwork):
		return outcomeRejected
	case errors.Is(err, ErrConfirmationTimeout):
		return outcomeTimeout
	case errors.Is(err, ErrPartialGroup):
		return outcomePartial
	case errors.Is(err, txn.ErrInvalidGroupInput):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
