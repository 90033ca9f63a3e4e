package ledger_test

import (
	"testing"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/ledger/ledgertest"
	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmitter(t *testing.T, fake *ledgertest.Ledger) *ledger.Submitter {
	t.Helper()
	submitter, err := ledger.NewSubmitter(ledger.SubmitterConfig{Ledger: fake, MaxWaitRounds: 4})
	require.NoError(t, err)
	return submitter
}

func buildPayment(t *testing.T, fake *ledgertest.Ledger, sender crypto.Account, receiver crypto.Account, amount uint64) txn.UnsignedTransaction {
	t.Helper()
	params, err := fake.NetworkParameters(t.Context())
	require.NoError(t, err)

	payment, err := txn.BuildPaymentTx(txn.PaymentTxParams{
		Sender:   sender.Address.String(),
		Receiver: receiver.Address.String(),
		Amount:   amount,
	}, params)
	require.NoError(t, err)
	return payment
}

func TestSubmitSinglePayment(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	sender := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()
	fake.Fund(sender.Address, 1000000)

	signed, err := txn.Sign(sender, buildPayment(t, fake, sender, receiver, 300000))
	require.NoError(t, err)

	startRound := fake.Round()
	result, err := newSubmitter(t, fake).Submit(t.Context(), signed)
	require.NoError(t, err)

	assert.Equal(t, signed.TxID, result.TxID)
	assert.Equal(t, startRound+1, result.ConfirmedRound)
	require.Len(t, result.Members, 1)
	assert.Equal(t, uint64(1000), result.Members[0].Fee)

	assert.Equal(t, uint64(1000000-300000-1000), fake.Balance(sender.Address))
	assert.Equal(t, uint64(300000), fake.Balance(receiver.Address))
}

func TestSubmitAtomicGroupAdjustsAllBalances(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	accountC := crypto.GenerateAccount()
	for _, account := range []crypto.Account{accountA, accountB, accountC} {
		fake.Fund(account.Address, 1000000)
	}

	grouped, groupID, err := txn.AssignGroup([]txn.UnsignedTransaction{
		buildPayment(t, fake, accountA, accountC, 100000),
		buildPayment(t, fake, accountB, accountA, 200000),
	})
	require.NoError(t, err)

	signed, err := txn.SignGroup(grouped, []crypto.Account{accountA, accountB})
	require.NoError(t, err)

	result, err := newSubmitter(t, fake).Submit(t.Context(), signed...)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Submissions())
	assert.Equal(t, groupID, result.GroupID)
	require.Len(t, result.Members, 2)
	assert.Equal(t, result.Members[0].ConfirmedRound, result.Members[1].ConfirmedRound)

	assert.Equal(t, uint64(1099000), fake.Balance(accountA.Address))
	assert.Equal(t, uint64(799000), fake.Balance(accountB.Address))
	assert.Equal(t, uint64(1100000), fake.Balance(accountC.Address))
}

func TestSubmitGroupIsAllOrNothing(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	accountC := crypto.GenerateAccount()
	fake.Fund(accountA.Address, 1000000)
	fake.Fund(accountB.Address, 150000)
	fake.Fund(accountC.Address, 1000000)

	grouped, _, err := txn.AssignGroup([]txn.UnsignedTransaction{
		buildPayment(t, fake, accountA, accountC, 100000),
		buildPayment(t, fake, accountB, accountA, 200000),
	})
	require.NoError(t, err)
	signed, err := txn.SignGroup(grouped, []crypto.Account{accountA, accountB})
	require.NoError(t, err)

	result, err := newSubmitter(t, fake).Submit(t.Context(), signed...)
	require.ErrorIs(t, err, ledger.ErrRejectedByNetwork)
	assert.Equal(t, ledger.ConfirmationResult{}, result)

	assert.Equal(t, 0, fake.Submissions())
	assert.Equal(t, uint64(1000000), fake.Balance(accountA.Address))
	assert.Equal(t, uint64(150000), fake.Balance(accountB.Address))
	assert.Equal(t, uint64(1000000), fake.Balance(accountC.Address))
}

func TestSubmitRejectsWrongSigner(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	sender := crypto.GenerateAccount()
	impostor := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()
	fake.Fund(sender.Address, 1000000)

	signed, err := txn.Sign(impostor, buildPayment(t, fake, sender, receiver, 200000))
	require.NoError(t, err)

	_, err = newSubmitter(t, fake).Submit(t.Context(), signed)
	require.ErrorIs(t, err, ledger.ErrRejectedByNetwork)
}

func TestSubmitRejectsGroupSignedByAnotherAccount(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	accountC := crypto.GenerateAccount()
	for _, account := range []crypto.Account{accountA, accountB, accountC} {
		fake.Fund(account.Address, 1000000)
	}

	grouped, _, err := txn.AssignGroup([]txn.UnsignedTransaction{
		buildPayment(t, fake, accountA, accountC, 100000),
		buildPayment(t, fake, accountB, accountA, 200000),
	})
	require.NoError(t, err)

	signed := make([]txn.SignedTransaction, len(grouped))
	for index, member := range grouped {
		signed[index], err = txn.Sign(accountC, member)
		require.NoError(t, err)
	}

	result, err := newSubmitter(t, fake).Submit(t.Context(), signed...)
	require.ErrorIs(t, err, ledger.ErrRejectedByNetwork)
	assert.ErrorContains(t, err, "should have been authorized by")
	assert.Equal(t, ledger.ConfirmationResult{}, result)

	assert.Equal(t, 0, fake.Submissions())
	for _, account := range []crypto.Account{accountA, accountB, accountC} {
		assert.Equal(t, uint64(1000000), fake.Balance(account.Address))
	}
}

func TestSubmitReorderedGroupIsRejected(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	fake.Fund(accountA.Address, 1000000)
	fake.Fund(accountB.Address, 1000000)

	grouped, _, err := txn.AssignGroup([]txn.UnsignedTransaction{
		buildPayment(t, fake, accountA, accountB, 100000),
		buildPayment(t, fake, accountB, accountA, 200000),
	})
	require.NoError(t, err)
	signed, err := txn.SignGroup(grouped, []crypto.Account{accountA, accountB})
	require.NoError(t, err)

	_, err = newSubmitter(t, fake).Submit(t.Context(), signed[1], signed[0])
	require.ErrorIs(t, err, ledger.ErrRejectedByNetwork)
	assert.Equal(t, 0, fake.Submissions())
}

func TestSubmitTimeoutReturnsNoResult(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	sender := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()
	fake.Fund(sender.Address, 1000000)
	fake.SetStalled(true)

	signed, err := txn.Sign(sender, buildPayment(t, fake, sender, receiver, 200000))
	require.NoError(t, err)

	startRound := fake.Round()
	result, err := newSubmitter(t, fake).Submit(t.Context(), signed)
	require.ErrorIs(t, err, ledger.ErrConfirmationTimeout)
	assert.Equal(t, ledger.ConfirmationResult{}, result)
	assert.Equal(t, startRound+4, fake.Round())
}

func TestSubmitAssetCreateReportsCreatedAsset(t *testing.T) {
	fake := ledgertest.New(ledgertest.Config{})
	creator := crypto.GenerateAccount()
	fake.Fund(creator.Address, 10000000)

	params, err := fake.NetworkParameters(t.Context())
	require.NoError(t, err)
	create, err := txn.BuildAssetCreateTx(txn.AssetCreateTxParams{
		Creator:   creator.Address.String(),
		Total:     1000000,
		Decimals:  2,
		UnitName:  "TA",
		AssetName: "TESTASSET",
		Manager:   creator.Address.String(),
	}, params)
	require.NoError(t, err)
	signed, err := txn.Sign(creator, create)
	require.NoError(t, err)

	result, err := newSubmitter(t, fake).Submit(t.Context(), signed)
	require.NoError(t, err)
	assert.Equal(t, ledgertest.DefaultFirstAssetID, result.AssetIndex)

	state, err := fake.AccountState(t.Context(), creator.Address.String())
	require.NoError(t, err)
	require.Len(t, state.CreatedAssets, 1)
	assert.Equal(t, uint64(1000000), state.CreatedAssets[0].Total)
	assert.Equal(t, uint32(2), state.CreatedAssets[0].Decimals)

	holding, ok := state.HeldAsset(result.AssetIndex)
	require.True(t, ok)
	assert.Equal(t, uint64(1000000), holding.Amount)
}
