package txn

import (
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// ComputeGroupID returns the group ID for the ordered transactions without
// modifying them. Existing group fields are ignored, so the result is the
// same whether or not the transactions were grouped before.
func ComputeGroupID(txns []UnsignedTransaction) (GroupID, error) {
	cleared, err := clearedGroupMembers(txns)
	if err != nil {
		return GroupID{}, err
	}
	return computeGroupID(cleared)
}

// AssignGroup stamps one group ID onto every transaction and returns the
// grouped copies in the same order. The input slice is left untouched.
//
// A transaction that already carries a group is accepted only when that
// group equals the computed one.
func AssignGroup(txns []UnsignedTransaction) ([]UnsignedTransaction, GroupID, error) {
	cleared, err := clearedGroupMembers(txns)
	if err != nil {
		return nil, GroupID{}, err
	}

	groupID, err := computeGroupID(cleared)
	if err != nil {
		return nil, GroupID{}, err
	}

	var empty GroupID
	for index, member := range txns {
		if member.Txn.Group != empty && member.Txn.Group != groupID {
			return nil, GroupID{}, NewInvalidGroupInputError(
				index,
				"transaction %d already belongs to group %x",
				index,
				member.Txn.Group[:],
			)
		}
	}

	grouped := make([]UnsignedTransaction, len(txns))
	for index, member := range cleared {
		member.Group = groupID
		grouped[index] = UnsignedTransaction{Kind: txns[index].Kind, Txn: member}
	}

	return grouped, groupID, nil
}

func clearedGroupMembers(txns []UnsignedTransaction) ([]types.Transaction, error) {
	if len(txns) == 0 {
		return nil, NewInvalidGroupInputError(-1, "at least one transaction is required")
	}
	if len(txns) > MaxGroupSize {
		return nil, NewInvalidGroupInputError(-1, "group has %d transactions, maximum is %d", len(txns), MaxGroupSize)
	}

	cleared := make([]types.Transaction, len(txns))
	seen := make(map[string]int, len(txns))
	for index, member := range txns {
		copied := member.Txn
		copied.Group = types.Digest{}
		txID := crypto.GetTxID(copied)
		if previous, exists := seen[txID]; exists {
			return nil, NewInvalidGroupInputError(index, "transaction %d duplicates transaction %d", index, previous)
		}
		seen[txID] = index
		cleared[index] = copied
	}

	return cleared, nil
}

func computeGroupID(cleared []types.Transaction) (GroupID, error) {
	groupID, err := crypto.ComputeGroupID(cleared)
	if err != nil {
		return GroupID{}, NewInvalidGroupInputError(-1, "%v", err)
	}
	return groupID, nil
}
