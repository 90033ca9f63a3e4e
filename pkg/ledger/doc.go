// Package ledger is the boundary between the workflows in this module and an
// Algorand node. It defines the Ledger interface, an algod-backed
// implementation, and the Submitter that sends a signed transaction or an
// atomic group in one call and waits round by round for confirmation.
//
// # Submitting
//
//	submitter, err := ledger.NewSubmitter(ledger.SubmitterConfig{
//		Ledger:        algodClient,
//		MaxWaitRounds: 4,
//	})
//
//	result, err := submitter.Submit(ctx, signed...)
//
// Submit returns a RejectedByNetworkError when the node refuses the payload
// and a ConfirmationTimeoutError when the transaction is not included within
// MaxWaitRounds rounds. A group is reported confirmed only when every member
// is confirmed in the same round.
package ledger
