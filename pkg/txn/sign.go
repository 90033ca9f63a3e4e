package txn

import (
	"crypto/ed25519"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
)

// Sign signs the transaction with the account's private key. The account need
// not be the sender: a rekeyed sender is authorized by another key, and the
// signed transaction then names that key as its auth address.
func Sign(account crypto.Account, unsigned UnsignedTransaction) (SignedTransaction, error) {
	if len(account.PrivateKey) != ed25519.PrivateKeySize {
		return SignedTransaction{}, fmt.Errorf("signing account has no private key")
	}

	txID, blob, err := crypto.SignTransaction(account.PrivateKey, unsigned.Txn)
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("failed to sign %s transaction: %w", unsigned.Kind, err)
	}

	return SignedTransaction{
		TxID:   txID,
		Blob:   blob,
		Kind:   unsigned.Kind,
		Txn:    unsigned.Txn,
		Signer: account.Address,
	}, nil
}

// SignGroup signs each grouped transaction with the signer at the same index.
// Every transaction must already carry the same group ID and each signer must
// be the sender of its transaction.
func SignGroup(grouped []UnsignedTransaction, signers []crypto.Account) ([]SignedTransaction, error) {
	if len(grouped) == 0 {
		return nil, NewInvalidGroupInputError(-1, "at least one transaction is required")
	}
	if len(grouped) != len(signers) {
		return nil, NewInvalidGroupInputError(
			-1,
			"%d transactions but %d signers",
			len(grouped),
			len(signers),
		)
	}

	var empty GroupID
	groupID := grouped[0].Group()
	if len(grouped) > 1 && groupID == empty {
		return nil, NewInvalidGroupInputError(0, "transaction 0 has no group; call AssignGroup first")
	}

	signed := make([]SignedTransaction, len(grouped))
	for index, member := range grouped {
		if member.Group() != groupID {
			return nil, NewInvalidGroupInputError(index, "transaction %d is not part of group %x", index, groupID[:])
		}
		if signers[index].Address != member.Txn.Sender {
			return nil, NewInvalidGroupInputError(
				index,
				"transaction %d is sent by %s but signed by %s",
				index,
				member.Txn.Sender,
				signers[index].Address,
			)
		}
		signedMember, err := Sign(signers[index], member)
		if err != nil {
			return nil, err
		}
		signed[index] = signedMember
	}

	return signed, nil
}

// EncodePayload concatenates the signed blobs in group order, which is the
// wire format algod expects for a group submission.
func EncodePayload(signed []SignedTransaction) []byte {
	size := 0
	for _, member := range signed {
		size += len(member.Blob)
	}

	payload := make([]byte, 0, size)
	for _, member := range signed {
		payload = append(payload, member.Blob...)
	}
	return payload
}
