package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForConfirmationConfirms(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.confirmedAt["TX1"] = 102

	pending, err := WaitForConfirmation(t.Context(), stub, "TX1", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(102), pending.ConfirmedRound)
	assert.Equal(t, 2, stub.statusAfterCalls)
}

func TestWaitForConfirmationAlreadyConfirmed(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.confirmedAt["TX1"] = 99

	pending, err := WaitForConfirmation(t.Context(), stub, "TX1", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), pending.ConfirmedRound)
	assert.Equal(t, 0, stub.statusAfterCalls)
}

func TestWaitForConfirmationTimeout(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.confirmedAt["TX1"] = 0

	pending, err := WaitForConfirmation(t.Context(), stub, "TX1", 4)
	require.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Equal(t, PendingTransaction{}, pending)
	assert.Equal(t, 4, stub.statusAfterCalls)

	var timeout ConfirmationTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "TX1", timeout.TxID)
	assert.Equal(t, uint64(100), timeout.StartRound)
	assert.Equal(t, uint64(104), timeout.LastRound)
	assert.Equal(t, uint64(4), timeout.MaxRounds)
}

func TestWaitForConfirmationConfirmsOnLastRound(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.confirmedAt["TX1"] = 104

	pending, err := WaitForConfirmation(t.Context(), stub, "TX1", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(104), pending.ConfirmedRound)
}

func TestWaitForConfirmationDefaultsMaxRounds(t *testing.T) {
	stub := newScriptedLedger(10)
	stub.confirmedAt["TX1"] = 0

	_, err := WaitForConfirmation(t.Context(), stub, "TX1", 0)
	require.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Equal(t, int(DefaultMaxWaitRounds), stub.statusAfterCalls)
}

func TestWaitForConfirmationStalledNodeStillTimesOut(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.noProgress = true
	stub.confirmedAt["TX1"] = 0

	_, err := WaitForConfirmation(t.Context(), stub, "TX1", 3)
	require.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Equal(t, 3, stub.statusAfterCalls)
}

func TestWaitForConfirmationPoolError(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.poolErrors["TX1"] = "overspend"

	_, err := WaitForConfirmation(t.Context(), stub, "TX1", 4)
	require.ErrorIs(t, err, ErrRejectedByNetwork)

	var rejected RejectedByNetworkError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "overspend", rejected.Reason)
}

func TestWaitForConfirmationUnknownTransaction(t *testing.T) {
	stub := newScriptedLedger(100)

	_, err := WaitForConfirmation(t.Context(), stub, "MISSING", 4)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfirmationTimeout)
}

func TestWaitForConfirmationCancelled(t *testing.T) {
	stub := newScriptedLedger(100)
	stub.confirmedAt["TX1"] = 0

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := WaitForConfirmation(ctx, stub, "TX1", 4)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrConfirmationTimeout)
}
