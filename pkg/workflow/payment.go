package workflow

import (
	"context"
	"fmt"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SendPayment signs and submits a single payment.
func (client *Client) SendPayment(ctx context.Context, options PaymentOptions) (ledger.ConfirmationResult, error) {
	sender, err := client.resolveSigner(options.From)
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	result, err := client.signAndSubmit(ctx, sender, func(params ledger.NetworkParameters) (txn.UnsignedTransaction, error) {
		return txn.BuildPaymentTx(txn.PaymentTxParams{
			Sender:           addressOf(sender),
			Receiver:         options.To,
			Amount:           options.Amount,
			CloseRemainderTo: options.CloseRemainderTo,
			Note:             options.Note,
		}, params)
	})
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	client.logger.Info("payment confirmed",
		zap.String("from", addressOf(sender)),
		zap.String("to", options.To),
		zap.String("algos", shared.FormatMicroAlgos(options.Amount)),
		zap.String("txid", result.TxID),
		zap.Uint64("round", result.ConfirmedRound),
	)
	return result, nil
}

// FundAccount pays amount microAlgos from the creator to address.
func (client *Client) FundAccount(ctx context.Context, address string, amount uint64) (ledger.ConfirmationResult, error) {
	if !hasKey(client.creator) {
		return ledger.ConfirmationResult{}, ErrCreatorRequired
	}
	return client.SendPayment(ctx, PaymentOptions{To: address, Amount: amount})
}

// FundAccounts funds every distinct address concurrently, each with its own
// payment and confirmation. An address listed twice is funded once and both
// positions share its result. Results are in the order of addresses. The
// first failure cancels the payments not yet submitted.
func (client *Client) FundAccounts(ctx context.Context, addresses []string, amount uint64) ([]ledger.ConfirmationResult, error) {
	if !hasKey(client.creator) {
		return nil, ErrCreatorRequired
	}

	// identical payments built from the same params share a transaction ID
	positions := make(map[string]int, len(addresses))
	distinct := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if _, seen := positions[address]; seen {
			continue
		}
		positions[address] = len(distinct)
		distinct = append(distinct, address)
	}

	funded := make([]ledger.ConfirmationResult, len(distinct))
	group, groupCtx := errgroup.WithContext(ctx)
	for index, address := range distinct {
		group.Go(func() error {
			result, err := client.FundAccount(groupCtx, address, amount)
			if err != nil {
				return fmt.Errorf("failed to fund %s: %w", address, err)
			}
			funded[index] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]ledger.ConfirmationResult, len(addresses))
	for index, address := range addresses {
		results[index] = funded[positions[address]]
	}
	return results, nil
}

// SubmitAtomicTransfer groups the payments in order, signs each with its
// sender and submits them as one atomic group.
func (client *Client) SubmitAtomicTransfer(ctx context.Context, legs []PaymentLeg) (AtomicTransferResult, error) {
	if len(legs) == 0 {
		return AtomicTransferResult{}, txn.NewInvalidGroupInputError(-1, "at least one payment is required")
	}

	params, err := client.ledger.NetworkParameters(ctx)
	if err != nil {
		return AtomicTransferResult{}, err
	}

	unsigned := make([]txn.UnsignedTransaction, len(legs))
	signers := make([]crypto.Account, len(legs))
	for index, leg := range legs {
		if !hasKey(leg.From) {
			return AtomicTransferResult{}, txn.NewInvalidGroupInputError(index, "payment %d has no signing account", index)
		}
		payment, err := txn.BuildPaymentTx(txn.PaymentTxParams{
			Sender:   addressOf(leg.From),
			Receiver: leg.To,
			Amount:   leg.Amount,
			Note:     leg.Note,
		}, params)
		if err != nil {
			return AtomicTransferResult{}, err
		}
		unsigned[index] = payment
		signers[index] = leg.From
	}

	grouped, groupID, err := txn.AssignGroup(unsigned)
	if err != nil {
		return AtomicTransferResult{}, err
	}
	signed, err := txn.SignGroup(grouped, signers)
	if err != nil {
		return AtomicTransferResult{}, err
	}

	confirmation, err := client.submitter.Submit(ctx, signed...)
	if err != nil {
		return AtomicTransferResult{}, err
	}

	client.logger.Info("atomic transfer confirmed",
		zap.Binary("group", groupID[:]),
		zap.Int("size", len(signed)),
		zap.Uint64("round", confirmation.ConfirmedRound),
	)
	return AtomicTransferResult{GroupID: groupID, Confirmation: confirmation}, nil
}
