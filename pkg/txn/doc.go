// Package txn assembles unsigned Algorand transactions from semantic intents,
// groups them into atomic units and signs them.
//
// Builders are pure: they take intent parameters plus the network parameters
// returned by algod and return an UnsignedTransaction. Nothing in this package
// performs I/O.
//
// # Building
//
//	payment, err := txn.BuildPaymentTx(txn.PaymentTxParams{
//		Sender:   accountA.Address.String(),
//		Receiver: accountC.Address.String(),
//		Amount:   100000,
//	}, params)
//
// # Grouping and Signing
//
// AssignGroup stamps a shared group ID onto an ordered list of transactions.
// The ledger commits a group in full or not at all, and the order passed to
// AssignGroup is the commit order:
//
//	grouped, groupID, err := txn.AssignGroup([]txn.UnsignedTransaction{payment, refund})
//	signed, err := txn.SignGroup(grouped, []crypto.Account{accountA, accountB})
package txn
