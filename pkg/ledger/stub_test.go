package ledger

import (
	"context"
	"fmt"
	"sync"
)

// scriptedLedger confirms transactions at fixed rounds and advances one round
// per StatusAfterRound call.
type scriptedLedger struct {
	mu sync.Mutex

	round      uint64
	noProgress bool
	sendErr    error
	// confirmedAt maps transaction IDs to their confirmation round.
	confirmedAt map[string]uint64
	poolErrors  map[string]string

	sent             [][]byte
	statusAfterCalls int
}

func newScriptedLedger(round uint64) *scriptedLedger {
	return &scriptedLedger{
		round:       round,
		confirmedAt: make(map[string]uint64),
		poolErrors:  make(map[string]string),
	}
}

func (s *scriptedLedger) NetworkParameters(context.Context) (NetworkParameters, error) {
	return NetworkParameters{}, nil
}

func (s *scriptedLedger) SendRawTransaction(_ context.Context, payload []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return "", s.sendErr
	}
	s.sent = append(s.sent, payload)
	return "", nil
}

func (s *scriptedLedger) Status(context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round, nil
}

func (s *scriptedLedger) StatusAfterRound(ctx context.Context, round uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusAfterCalls++
	if !s.noProgress {
		s.round = round + 1
	}
	return s.round, nil
}

func (s *scriptedLedger) PendingTransaction(_ context.Context, txID string) (PendingTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reason, ok := s.poolErrors[txID]; ok {
		return PendingTransaction{TxID: txID, PoolError: reason}, nil
	}
	confirmedAt, ok := s.confirmedAt[txID]
	if !ok {
		return PendingTransaction{}, fmt.Errorf("transaction %s not found", txID)
	}
	if confirmedAt == 0 || s.round < confirmedAt {
		return PendingTransaction{TxID: txID}, nil
	}
	return PendingTransaction{TxID: txID, ConfirmedRound: confirmedAt}, nil
}

func (s *scriptedLedger) AccountState(_ context.Context, address string) (AccountState, error) {
	return AccountState{Address: address}, nil
}
