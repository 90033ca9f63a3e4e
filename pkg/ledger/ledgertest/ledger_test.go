package ledgertest

import (
	"testing"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payment(t *testing.T, fake *Ledger, sender types.Address, receiver types.Address, amount uint64) types.Transaction {
	t.Helper()
	params, err := fake.NetworkParameters(t.Context())
	require.NoError(t, err)

	built, err := txn.BuildPaymentTx(txn.PaymentTxParams{
		Sender:   sender.String(),
		Receiver: receiver.String(),
		Amount:   amount,
	}, params)
	require.NoError(t, err)
	return built.Txn
}

func TestSendRejectsKeyOtherThanSender(t *testing.T) {
	fake := New(Config{})
	sender := crypto.GenerateAccount()
	impostor := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()
	fake.Fund(sender.Address, 1000000)

	_, blob, err := crypto.SignTransaction(impostor.PrivateKey, payment(t, fake, sender.Address, receiver.Address, 200000))
	require.NoError(t, err)

	_, err = fake.SendRawTransaction(t.Context(), blob)
	require.ErrorIs(t, err, ledger.ErrRejectedByNetwork)
	assert.ErrorContains(t, err, "should have been authorized by "+sender.Address.String())
	assert.Equal(t, 0, fake.Submissions())
	assert.Equal(t, uint64(1000000), fake.Balance(sender.Address))
}

func TestSendRejectsForeignSignatureClaimingSender(t *testing.T) {
	fake := New(Config{})
	sender := crypto.GenerateAccount()
	impostor := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()
	fake.Fund(sender.Address, 1000000)

	_, blob, err := crypto.SignTransaction(impostor.PrivateKey, payment(t, fake, sender.Address, receiver.Address, 200000))
	require.NoError(t, err)
	var forged types.SignedTxn
	require.NoError(t, msgpack.Decode(blob, &forged))
	forged.AuthAddr = sender.Address

	_, err = fake.SendRawTransaction(t.Context(), msgpack.Encode(forged))
	require.ErrorIs(t, err, ledger.ErrRejectedByNetwork)
	assert.ErrorContains(t, err, "signature validation failed")
	assert.Equal(t, 0, fake.Submissions())
}

func TestSendEvaluatesAgainstGroupsPooledAfterAFailure(t *testing.T) {
	fake := New(Config{})
	unfunded := crypto.GenerateAccount()
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	accountC := crypto.GenerateAccount()
	fake.Fund(accountA.Address, 1000000)

	failing := payment(t, fake, unfunded.Address, accountC.Address, 100)
	funding := payment(t, fake, accountA.Address, accountB.Address, 500000)
	failingID := crypto.GetTxID(failing)
	fundingID := crypto.GetTxID(funding)

	fake.mu.Lock()
	fake.pool = append(fake.pool,
		pooledGroup{txns: []types.Transaction{failing}, ids: []string{failingID}},
		pooledGroup{txns: []types.Transaction{funding}, ids: []string{fundingID}},
	)
	fake.records[failingID] = &record{}
	fake.records[fundingID] = &record{}
	fake.mu.Unlock()

	// spends funds that only the second pooled group provides
	txID, blob, err := crypto.SignTransaction(accountB.PrivateKey, payment(t, fake, accountB.Address, accountC.Address, 300000))
	require.NoError(t, err)
	returned, err := fake.SendRawTransaction(t.Context(), blob)
	require.NoError(t, err)
	assert.Equal(t, txID, returned)

	round, err := fake.StatusAfterRound(t.Context(), fake.Round())
	require.NoError(t, err)

	failed, err := fake.PendingTransaction(t.Context(), failingID)
	require.NoError(t, err)
	assert.NotEmpty(t, failed.PoolError)
	assert.Zero(t, failed.ConfirmedRound)

	for _, id := range []string{fundingID, txID} {
		pending, err := fake.PendingTransaction(t.Context(), id)
		require.NoError(t, err)
		assert.Empty(t, pending.PoolError)
		assert.Equal(t, round, pending.ConfirmedRound)
	}

	assert.Equal(t, uint64(1000000-500000-1000), fake.Balance(accountA.Address))
	assert.Equal(t, uint64(500000-300000-1000), fake.Balance(accountB.Address))
	assert.Equal(t, uint64(300000), fake.Balance(accountC.Address))
	assert.Zero(t, fake.Balance(unfunded.Address))
}
