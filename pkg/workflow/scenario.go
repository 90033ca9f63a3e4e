package workflow

import (
	"context"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"go.uber.org/zap"
)

// RunAtomicTransferScenario funds three accounts A, B and C from the creator,
// then submits A→C and B→A as one atomic group. The report carries each
// balance before and after the group and the balance expected from the
// amounts and fees.
func (client *Client) RunAtomicTransferScenario(ctx context.Context, options AtomicScenarioOptions) (AtomicScenarioReport, error) {
	if !hasKey(client.creator) {
		return AtomicScenarioReport{}, ErrCreatorRequired
	}

	fundAmount := options.FundAmount
	if fundAmount == 0 {
		fundAmount = DefaultFundAmount
	}
	amountAToC := options.AmountAToC
	if amountAToC == 0 {
		amountAToC = DefaultScenarioAmountAToC
	}
	amountBToA := options.AmountBToA
	if amountBToA == 0 {
		amountBToA = DefaultScenarioAmountBToA
	}

	accounts := make([]crypto.Account, 0, 3)
	for _, account := range options.Accounts {
		if len(accounts) == 3 {
			break
		}
		if hasKey(account) {
			accounts = append(accounts, account)
		}
	}
	for len(accounts) < 3 {
		accounts = append(accounts, crypto.GenerateAccount())
	}
	accountA, accountB, accountC := accounts[0], accounts[1], accounts[2]
	addresses := []string{addressOf(accountA), addressOf(accountB), addressOf(accountC)}

	funding, err := client.FundAccounts(ctx, addresses, fundAmount)
	if err != nil {
		return AtomicScenarioReport{}, newStepError("funding", err)
	}

	before, err := client.balances(ctx, addresses)
	if err != nil {
		return AtomicScenarioReport{}, err
	}

	transfer, err := client.SubmitAtomicTransfer(ctx, []PaymentLeg{
		{From: accountA, To: addresses[2], Amount: amountAToC},
		{From: accountB, To: addresses[0], Amount: amountBToA},
	})
	if err != nil {
		return AtomicScenarioReport{}, newStepError("atomic transfer", err)
	}

	after, err := client.balances(ctx, addresses)
	if err != nil {
		return AtomicScenarioReport{}, err
	}

	feeA := transfer.Confirmation.Members[0].Fee
	feeB := transfer.Confirmation.Members[1].Fee
	expected := []uint64{
		before[0] - amountAToC - feeA + amountBToA,
		before[1] - amountBToA - feeB,
		before[2] + amountAToC,
	}

	report := AtomicScenarioReport{
		Accounts: accounts,
		Funding:  funding,
		Transfer: transfer,
		Balances: make([]AccountBalance, len(addresses)),
	}
	for index, address := range addresses {
		report.Balances[index] = AccountBalance{
			Address:  address,
			Before:   before[index],
			Expected: expected[index],
			After:    after[index],
		}
	}

	if !report.Matches() {
		client.logger.Warn("balances after atomic transfer differ from expected", zap.Any("balances", report.Balances))
	}
	return report, nil
}

func (client *Client) balances(ctx context.Context, addresses []string) ([]uint64, error) {
	balances := make([]uint64, len(addresses))
	for index, address := range addresses {
		balance, err := client.Balance(ctx, address)
		if err != nil {
			return nil, err
		}
		balances[index] = balance
	}
	return balances, nil
}

// RunAssetLifecycle creates an asset, moves its clawback role to a new
// address, funds a receiver, opts the receiver in and transfers units to it.
// When the asset options name no control address, the creator takes every
// role.
func (client *Client) RunAssetLifecycle(ctx context.Context, options AssetLifecycleOptions) (AssetLifecycleReport, error) {
	creator, err := client.resolveSigner(options.Asset.Creator)
	if err != nil {
		return AssetLifecycleReport{}, err
	}

	assetOptions := options.Asset
	assetOptions.Creator = creator
	if assetOptions.Manager == "" && assetOptions.Reserve == "" && assetOptions.Freeze == "" && assetOptions.Clawback == "" {
		assetOptions.Manager = addressOf(creator)
		assetOptions.Reserve = addressOf(creator)
		assetOptions.Freeze = addressOf(creator)
		assetOptions.Clawback = addressOf(creator)
	}

	receiver := options.Receiver
	if !hasKey(receiver) {
		receiver = crypto.GenerateAccount()
	}
	receiverFunding := options.ReceiverFunding
	if receiverFunding == 0 {
		receiverFunding = DefaultReceiverFunding
	}
	transferAmount := options.TransferAmount
	if transferAmount == 0 {
		transferAmount = DefaultLifecycleTransfer
	}
	newClawback := options.NewClawback
	if newClawback == "" {
		newClawback = addressOf(crypto.GenerateAccount())
	}

	report := AssetLifecycleReport{
		Receiver:      receiver,
		Confirmations: make(map[LifecycleStage]ledger.ConfirmationResult, 5),
	}
	progress := func(stage LifecycleStage, percentage int, txID string) {
		reportLifecycleProgress(options.ProgressCallback, LifecycleProgress{
			Stage:      stage,
			Percentage: percentage,
			AssetID:    report.AssetID,
			TxID:       txID,
		})
	}

	created, err := client.CreateAsset(ctx, assetOptions)
	if err != nil {
		return AssetLifecycleReport{}, newStepError(string(StageCreate), err)
	}
	report.AssetID = created.AssetID
	report.Created = created.Asset
	report.Confirmations[StageCreate] = created.Confirmation
	progress(StageCreate, 20, created.Confirmation.TxID)

	// only clawback changes; a role empty here was already empty at creation
	modified, err := client.ModifyAsset(ctx, ModifyAssetOptions{
		Manager:             creator,
		AssetID:             created.AssetID,
		NewManager:          created.Asset.Manager,
		NewReserve:          created.Asset.Reserve,
		NewFreeze:           created.Asset.Freeze,
		NewClawback:         newClawback,
		AllowEmptyAddresses: true,
	})
	if err != nil {
		return AssetLifecycleReport{}, newStepError(string(StageModify), err)
	}
	report.Modified = modified.Asset
	report.Confirmations[StageModify] = modified.Confirmation
	progress(StageModify, 40, modified.Confirmation.TxID)

	funded, err := client.SendPayment(ctx, PaymentOptions{From: creator, To: addressOf(receiver), Amount: receiverFunding})
	if err != nil {
		return AssetLifecycleReport{}, newStepError(string(StageFund), err)
	}
	report.Confirmations[StageFund] = funded
	progress(StageFund, 60, funded.TxID)

	optedIn, err := client.OptIn(ctx, receiver, created.AssetID)
	if err != nil {
		return AssetLifecycleReport{}, newStepError(string(StageOptIn), err)
	}
	report.Confirmations[StageOptIn] = optedIn
	progress(StageOptIn, 80, optedIn.TxID)

	transferred, err := client.TransferAsset(ctx, TransferAssetOptions{
		Sender:   creator,
		Receiver: addressOf(receiver),
		AssetID:  created.AssetID,
		Amount:   transferAmount,
	})
	if err != nil {
		return AssetLifecycleReport{}, newStepError(string(StageTransfer), err)
	}
	report.Confirmations[StageTransfer] = transferred

	report.ReceiverState, err = client.ledger.AccountState(ctx, addressOf(receiver))
	if err != nil {
		return AssetLifecycleReport{}, err
	}
	holding, ok := report.ReceiverState.HeldAsset(created.AssetID)
	if !ok {
		return AssetLifecycleReport{}, newAssetNotFoundError(addressOf(receiver), created.AssetID, "held")
	}
	report.ReceiverHolding = holding
	progress(StageComplete, 100, transferred.TxID)

	return report, nil
}

func reportLifecycleProgress(callback LifecycleProgressCallback, progress LifecycleProgress) {
	if callback != nil {
		callback(progress)
	}
}
