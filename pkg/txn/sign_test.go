package txn

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	sender := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()
	payment := mustPayment(sender, receiver, 42)

	signed, err := Sign(sender, payment)
	require.NoError(t, err)

	assert.Equal(t, payment.ID(), signed.TxID)
	assert.Equal(t, sender.Address, signed.Signer)
	assert.Equal(t, KindPayment, signed.Kind)

	var decoded types.SignedTxn
	require.NoError(t, msgpack.Decode(signed.Blob, &decoded))
	assert.Equal(t, payment.Txn.Sender, decoded.Txn.Sender)

	message := append([]byte("TX"), msgpack.Encode(decoded.Txn)...)
	assert.True(t, ed25519.Verify(sender.PublicKey, message, decoded.Sig[:]))
}

func TestSignRequiresPrivateKey(t *testing.T) {
	sender := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()

	_, err := Sign(crypto.Account{Address: sender.Address}, mustPayment(sender, receiver, 1))
	require.Error(t, err)
}

func TestSignGroupPreservesOrder(t *testing.T) {
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	accountC := crypto.GenerateAccount()

	grouped, groupID, err := AssignGroup([]UnsignedTransaction{
		mustPayment(accountA, accountC, 100000),
		mustPayment(accountB, accountA, 200000),
	})
	require.NoError(t, err)

	signed, err := SignGroup(grouped, []crypto.Account{accountA, accountB})
	require.NoError(t, err)
	require.Len(t, signed, 2)

	assert.Equal(t, accountA.Address, signed[0].Signer)
	assert.Equal(t, accountB.Address, signed[1].Signer)
	for index, member := range signed {
		assert.Equal(t, groupID, member.Group())
		assert.Equal(t, grouped[index].ID(), member.TxID)
	}

	payload := EncodePayload(signed)
	assert.True(t, bytes.HasPrefix(payload, signed[0].Blob))
	assert.True(t, bytes.HasSuffix(payload, signed[1].Blob))
	assert.Len(t, payload, len(signed[0].Blob)+len(signed[1].Blob))
}

func TestSignGroupRejectsMismatchedInput(t *testing.T) {
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()

	ungrouped := []UnsignedTransaction{
		mustPayment(accountA, accountB, 1),
		mustPayment(accountB, accountA, 2),
	}

	_, err := SignGroup(ungrouped, []crypto.Account{accountA, accountB})
	require.ErrorIs(t, err, ErrInvalidGroupInput)

	grouped, _, err := AssignGroup(ungrouped)
	require.NoError(t, err)

	_, err = SignGroup(grouped, []crypto.Account{accountA})
	require.ErrorIs(t, err, ErrInvalidGroupInput)

	_, err = SignGroup(nil, nil)
	require.ErrorIs(t, err, ErrInvalidGroupInput)
}

func TestSignGroupRejectsSignerMismatch(t *testing.T) {
	accountA := crypto.GenerateAccount()
	accountB := crypto.GenerateAccount()
	accountC := crypto.GenerateAccount()

	grouped, _, err := AssignGroup([]UnsignedTransaction{
		mustPayment(accountA, accountC, 100000),
		mustPayment(accountB, accountA, 200000),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		signers []crypto.Account
		index   int
	}{
		{name: "same key for every member", signers: []crypto.Account{accountC, accountC}, index: 0},
		{name: "swapped signers", signers: []crypto.Account{accountB, accountA}, index: 0},
		{name: "second member", signers: []crypto.Account{accountA, accountC}, index: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := SignGroup(grouped, tt.signers)
			require.ErrorIs(t, err, ErrInvalidGroupInput)
			assert.Nil(t, signed)

			var groupErr InvalidGroupInputError
			require.ErrorAs(t, err, &groupErr)
			assert.Equal(t, tt.index, groupErr.Index)
			assert.ErrorContains(t, err, "signed by "+tt.signers[tt.index].Address.String())
		})
	}
}

func TestSignAllowsAuthorizingKey(t *testing.T) {
	sender := crypto.GenerateAccount()
	authorizer := crypto.GenerateAccount()
	receiver := crypto.GenerateAccount()

	signed, err := Sign(authorizer, mustPayment(sender, receiver, 1))
	require.NoError(t, err)
	assert.Equal(t, authorizer.Address, signed.Signer)

	var decoded types.SignedTxn
	require.NoError(t, msgpack.Decode(signed.Blob, &decoded))
	assert.Equal(t, authorizer.Address, decoded.AuthAddr)
	assert.Equal(t, sender.Address, decoded.Txn.Sender)
}
