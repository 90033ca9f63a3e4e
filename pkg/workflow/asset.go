package workflow

import (
	"context"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"go.uber.org/zap"
)

// CreateAsset creates a fungible asset and returns it as recorded by the
// ledger.
func (client *Client) CreateAsset(ctx context.Context, options CreateAssetOptions) (AssetCreation, error) {
	creator, err := client.resolveSigner(options.Creator)
	if err != nil {
		return AssetCreation{}, err
	}

	result, err := client.signAndSubmit(ctx, creator, func(params ledger.NetworkParameters) (txn.UnsignedTransaction, error) {
		return txn.BuildAssetCreateTx(txn.AssetCreateTxParams{
			Creator:       addressOf(creator),
			Total:         options.Total,
			Decimals:      options.Decimals,
			DefaultFrozen: options.DefaultFrozen,
			UnitName:      options.UnitName,
			AssetName:     options.AssetName,
			URL:           options.URL,
			MetadataHash:  options.MetadataHash,
			Manager:       options.Manager,
			Reserve:       options.Reserve,
			Freeze:        options.Freeze,
			Clawback:      options.Clawback,
			Note:          options.Note,
		}, params)
	})
	if err != nil {
		return AssetCreation{}, err
	}

	return client.readCreation(ctx, addressOf(creator), result)
}

// CreateNFT creates a unique asset with a total of one and no decimals.
func (client *Client) CreateNFT(ctx context.Context, options CreateNFTOptions) (AssetCreation, error) {
	creator, err := client.resolveSigner(options.Creator)
	if err != nil {
		return AssetCreation{}, err
	}

	result, err := client.signAndSubmit(ctx, creator, func(params ledger.NetworkParameters) (txn.UnsignedTransaction, error) {
		return txn.BuildNFTCreateTx(txn.NFTCreateTxParams{
			Creator:       addressOf(creator),
			UnitName:      options.UnitName,
			AssetName:     options.AssetName,
			URL:           options.URL,
			MetadataHash:  options.MetadataHash,
			DefaultFrozen: options.DefaultFrozen,
			Manager:       options.Manager,
			Reserve:       options.Reserve,
			Freeze:        options.Freeze,
			Clawback:      options.Clawback,
			Note:          options.Note,
		}, params)
	})
	if err != nil {
		return AssetCreation{}, err
	}

	return client.readCreation(ctx, addressOf(creator), result)
}

func (client *Client) readCreation(ctx context.Context, creator string, result ledger.ConfirmationResult) (AssetCreation, error) {
	asset, err := client.GetCreatedAsset(ctx, creator, result.AssetIndex)
	if err != nil {
		return AssetCreation{}, err
	}

	client.logger.Info("asset created",
		zap.Uint64("asset_id", result.AssetIndex),
		zap.String("unit_name", asset.UnitName),
		zap.String("total", shared.FormatAssetAmount(asset.Total, asset.Decimals)),
		zap.String("txid", result.TxID),
	)
	return AssetCreation{AssetID: result.AssetIndex, Asset: asset, Confirmation: result}, nil
}

// ModifyAsset replaces the control addresses of an asset. Every role is
// written: a role left empty is cleared, which requires AllowEmptyAddresses.
func (client *Client) ModifyAsset(ctx context.Context, options ModifyAssetOptions) (AssetModification, error) {
	manager, err := client.resolveSigner(options.Manager)
	if err != nil {
		return AssetModification{}, err
	}

	result, err := client.signAndSubmit(ctx, manager, func(params ledger.NetworkParameters) (txn.UnsignedTransaction, error) {
		return txn.BuildAssetConfigTx(txn.AssetConfigTxParams{
			Manager:             addressOf(manager),
			AssetID:             options.AssetID,
			NewManager:          options.NewManager,
			NewReserve:          options.NewReserve,
			NewFreeze:           options.NewFreeze,
			NewClawback:         options.NewClawback,
			AllowEmptyAddresses: options.AllowEmptyAddresses,
			Note:                options.Note,
		}, params)
	})
	if err != nil {
		return AssetModification{}, err
	}

	modification := AssetModification{Confirmation: result}
	state, err := client.ledger.AccountState(ctx, addressOf(manager))
	if err != nil {
		return AssetModification{}, err
	}
	// the manager need not be the creator, so the asset may not be listed
	if asset, ok := state.CreatedAsset(options.AssetID); ok {
		modification.Asset = asset
	}

	client.logger.Info("asset modified",
		zap.Uint64("asset_id", options.AssetID),
		zap.String("manager", options.NewManager),
		zap.String("clawback", options.NewClawback),
		zap.String("txid", result.TxID),
	)
	return modification, nil
}

// OptIn lets account receive assetID. The account signs its own opt-in.
func (client *Client) OptIn(ctx context.Context, account crypto.Account, assetID uint64) (ledger.ConfirmationResult, error) {
	signer, err := client.resolveSigner(account)
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	result, err := client.signAndSubmit(ctx, signer, func(params ledger.NetworkParameters) (txn.UnsignedTransaction, error) {
		return txn.BuildAssetOptInTx(txn.AssetOptInTxParams{
			Account: addressOf(signer),
			AssetID: assetID,
		}, params)
	})
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	client.logger.Info("asset opt-in confirmed",
		zap.String("account", addressOf(signer)),
		zap.Uint64("asset_id", assetID),
		zap.String("txid", result.TxID),
	)
	return result, nil
}

// TransferAsset moves units of an asset to a receiver that has opted in.
func (client *Client) TransferAsset(ctx context.Context, options TransferAssetOptions) (ledger.ConfirmationResult, error) {
	sender, err := client.resolveSigner(options.Sender)
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	result, err := client.signAndSubmit(ctx, sender, func(params ledger.NetworkParameters) (txn.UnsignedTransaction, error) {
		return txn.BuildAssetTransferTx(txn.AssetTransferTxParams{
			Sender:   addressOf(sender),
			Receiver: options.Receiver,
			AssetID:  options.AssetID,
			Amount:   options.Amount,
			CloseTo:  options.CloseTo,
			Note:     options.Note,
		}, params)
	})
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	client.logger.Info("asset transfer confirmed",
		zap.String("from", addressOf(sender)),
		zap.String("to", options.Receiver),
		zap.Uint64("asset_id", options.AssetID),
		zap.Uint64("amount", options.Amount),
		zap.String("txid", result.TxID),
	)
	return result, nil
}

// GetCreatedAsset returns an asset created by address.
func (client *Client) GetCreatedAsset(ctx context.Context, address string, assetID uint64) (ledger.CreatedAsset, error) {
	state, err := client.ledger.AccountState(ctx, address)
	if err != nil {
		return ledger.CreatedAsset{}, err
	}
	asset, ok := state.CreatedAsset(assetID)
	if !ok {
		return ledger.CreatedAsset{}, newAssetNotFoundError(address, assetID, "created")
	}
	return asset, nil
}

// GetAssetHolding returns the holding of assetID by address.
func (client *Client) GetAssetHolding(ctx context.Context, address string, assetID uint64) (ledger.AssetHolding, error) {
	state, err := client.ledger.AccountState(ctx, address)
	if err != nil {
		return ledger.AssetHolding{}, err
	}
	holding, ok := state.HeldAsset(assetID)
	if !ok {
		return ledger.AssetHolding{}, newAssetNotFoundError(address, assetID, "held")
	}
	return holding, nil
}
