package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrRejectedByNetwork   = errors.New("rejected by network")
	ErrConfirmationTimeout = errors.New("confirmation timeout")
	ErrPartialGroup        = errors.New("group not confirmed atomically")
)

type LedgerError struct {
	Message string
}

func (errorValue LedgerError) Error() string {
	return errorValue.Message
}

// RejectedByNetworkError reports a payload the node refused, either at
// submission or later from the transaction pool.
type RejectedByNetworkError struct {
	LedgerError
	TxID   string
	Reason string
	Cause  error
}

func (errorValue RejectedByNetworkError) Is(target error) bool {
	return target == ErrRejectedByNetwork
}

func (errorValue RejectedByNetworkError) Unwrap() error {
	return errorValue.Cause
}

func NewRejectedByNetworkError(txID string, reason string, cause error) error {
	message := fmt.Sprintf("transaction %s rejected by network: %s", txID, reason)
	if txID == "" {
		message = fmt.Sprintf("payload rejected by network: %s", reason)
	}
	return RejectedByNetworkError{
		LedgerError: LedgerError{Message: message},
		TxID:        txID,
		Reason:      reason,
		Cause:       cause,
	}
}

type ConfirmationTimeoutError struct {
	LedgerError
	TxID       string
	StartRound uint64
	LastRound  uint64
	MaxRounds  uint64
}

func (errorValue ConfirmationTimeoutError) Is(target error) bool {
	return target == ErrConfirmationTimeout
}

func NewConfirmationTimeoutError(txID string, startRound uint64, lastRound uint64, maxRounds uint64) error {
	return ConfirmationTimeoutError{
		LedgerError: LedgerError{Message: fmt.Sprintf(
			"transaction %s not confirmed within %d rounds (rounds %d-%d)",
			txID,
			maxRounds,
			startRound,
			lastRound,
		)},
		TxID:       txID,
		StartRound: startRound,
		LastRound:  lastRound,
		MaxRounds:  maxRounds,
	}
}

type PartialGroupError struct {
	LedgerError
	TxID          string
	ExpectedRound uint64
	ActualRound   uint64
}

func (errorValue PartialGroupError) Is(target error) bool {
	return target == ErrPartialGroup
}

func NewPartialGroupError(txID string, expectedRound uint64, actualRound uint64) error {
	return PartialGroupError{
		LedgerError: LedgerError{Message: fmt.Sprintf(
			"group member %s confirmed in round %d, group confirmed in round %d",
			txID,
			actualRound,
			expectedRound,
		)},
		TxID:          txID,
		ExpectedRound: expectedRound,
		ActualRound:   actualRound,
	}
}
