package ledger

import (
	"context"
	"fmt"
)

// WaitForConfirmation polls the ledger once per new round until txID is
// confirmed, the pool reports it rejected, or maxRounds rounds pass without
// inclusion. A zero maxRounds uses DefaultMaxWaitRounds.
func WaitForConfirmation(ctx context.Context, ledger Ledger, txID string, maxRounds uint64) (PendingTransaction, error) {
	if maxRounds == 0 {
		maxRounds = DefaultMaxWaitRounds
	}

	startRound, err := ledger.Status(ctx)
	if err != nil {
		return PendingTransaction{}, err
	}

	lastSeen := startRound
	deadline := startRound + maxRounds
	for {
		pending, err := ledger.PendingTransaction(ctx, txID)
		if err != nil {
			return PendingTransaction{}, err
		}
		if pending.ConfirmedRound > 0 {
			return pending, nil
		}
		if pending.PoolError != "" {
			return PendingTransaction{}, NewRejectedByNetworkError(txID, pending.PoolError, nil)
		}
		if lastSeen >= deadline {
			return PendingTransaction{}, NewConfirmationTimeoutError(txID, startRound, lastSeen, maxRounds)
		}

		round, err := ledger.StatusAfterRound(ctx, lastSeen)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return PendingTransaction{}, fmt.Errorf("stopped waiting for %s at round %d: %w", txID, lastSeen, ctxErr)
			}
			return PendingTransaction{}, err
		}
		// a node that reports no progress still consumes one round of the budget
		if round <= lastSeen {
			round = lastSeen + 1
		}
		lastSeen = round
	}
}
