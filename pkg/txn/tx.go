package txn

import (
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// BuildPaymentTx builds a plain value transfer in microAlgos.
func BuildPaymentTx(params PaymentTxParams, network types.SuggestedParams) (UnsignedTransaction, error) {
	if err := ValidateAddress(KindPayment, "sender", params.Sender); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := ValidateAddress(KindPayment, "receiver", params.Receiver); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateOptionalAddress(KindPayment, "close remainder to", params.CloseRemainderTo); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateNote(KindPayment, params.Note); err != nil {
		return UnsignedTransaction{}, err
	}

	built, err := transaction.MakePaymentTxn(
		strings.TrimSpace(params.Sender),
		strings.TrimSpace(params.Receiver),
		params.Amount,
		params.Note,
		strings.TrimSpace(params.CloseRemainderTo),
		network,
	)
	if err != nil {
		return UnsignedTransaction{}, fmt.Errorf("failed to build payment transaction: %w", err)
	}

	return UnsignedTransaction{Kind: KindPayment, Txn: built}, nil
}

// BuildAssetCreateTx builds an asset creation with a fixed supply.
func BuildAssetCreateTx(params AssetCreateTxParams, network types.SuggestedParams) (UnsignedTransaction, error) {
	if err := validateAssetCreate(params); err != nil {
		return UnsignedTransaction{}, err
	}

	built, err := transaction.MakeAssetCreateTxn(
		strings.TrimSpace(params.Creator),
		params.Note,
		network,
		params.Total,
		params.Decimals,
		params.DefaultFrozen,
		strings.TrimSpace(params.Manager),
		strings.TrimSpace(params.Reserve),
		strings.TrimSpace(params.Freeze),
		strings.TrimSpace(params.Clawback),
		params.UnitName,
		params.AssetName,
		params.URL,
		string(params.MetadataHash),
	)
	if err != nil {
		return UnsignedTransaction{}, fmt.Errorf("failed to build asset create transaction: %w", err)
	}

	return UnsignedTransaction{Kind: KindAssetCreate, Txn: built}, nil
}

// BuildNFTCreateTx builds a pure non-fungible asset: total 1, decimals 0.
// Roles left empty are permanently disabled.
func BuildNFTCreateTx(params NFTCreateTxParams, network types.SuggestedParams) (UnsignedTransaction, error) {
	manager := params.Manager
	if strings.TrimSpace(manager) == "" {
		manager = params.Creator
	}

	return BuildAssetCreateTx(AssetCreateTxParams{
		Creator:       params.Creator,
		Total:         1,
		Decimals:      0,
		DefaultFrozen: params.DefaultFrozen,
		UnitName:      params.UnitName,
		AssetName:     params.AssetName,
		URL:           params.URL,
		MetadataHash:  params.MetadataHash,
		Manager:       manager,
		Reserve:       params.Reserve,
		Freeze:        params.Freeze,
		Clawback:      params.Clawback,
		Note:          params.Note,
	}, network)
}

// BuildAssetConfigTx builds a reconfiguration of the four control addresses.
// The ledger only accepts it when signed by the current manager.
func BuildAssetConfigTx(params AssetConfigTxParams, network types.SuggestedParams) (UnsignedTransaction, error) {
	if err := validateAssetConfig(params); err != nil {
		return UnsignedTransaction{}, err
	}

	built, err := transaction.MakeAssetConfigTxn(
		strings.TrimSpace(params.Manager),
		params.Note,
		network,
		params.AssetID,
		strings.TrimSpace(params.NewManager),
		strings.TrimSpace(params.NewReserve),
		strings.TrimSpace(params.NewFreeze),
		strings.TrimSpace(params.NewClawback),
		!params.AllowEmptyAddresses,
	)
	if err != nil {
		return UnsignedTransaction{}, fmt.Errorf("failed to build asset config transaction: %w", err)
	}

	return UnsignedTransaction{Kind: KindAssetConfig, Txn: built}, nil
}

// BuildAssetOptInTx builds the zero-amount self transfer that lets an
// account hold an asset.
func BuildAssetOptInTx(params AssetOptInTxParams, network types.SuggestedParams) (UnsignedTransaction, error) {
	if err := ValidateAddress(KindAssetOptIn, "account", params.Account); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateAssetID(KindAssetOptIn, params.AssetID); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateNote(KindAssetOptIn, params.Note); err != nil {
		return UnsignedTransaction{}, err
	}

	built, err := transaction.MakeAssetAcceptanceTxn(
		strings.TrimSpace(params.Account),
		params.Note,
		network,
		params.AssetID,
	)
	if err != nil {
		return UnsignedTransaction{}, fmt.Errorf("failed to build asset opt-in transaction: %w", err)
	}

	return UnsignedTransaction{Kind: KindAssetOptIn, Txn: built}, nil
}

// BuildAssetTransferTx builds a transfer of an existing asset between holders.
func BuildAssetTransferTx(params AssetTransferTxParams, network types.SuggestedParams) (UnsignedTransaction, error) {
	if err := ValidateAddress(KindAssetTransfer, "sender", params.Sender); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := ValidateAddress(KindAssetTransfer, "receiver", params.Receiver); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateOptionalAddress(KindAssetTransfer, "close to", params.CloseTo); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateAssetID(KindAssetTransfer, params.AssetID); err != nil {
		return UnsignedTransaction{}, err
	}
	if err := validateNote(KindAssetTransfer, params.Note); err != nil {
		return UnsignedTransaction{}, err
	}

	built, err := transaction.MakeAssetTransferTxn(
		strings.TrimSpace(params.Sender),
		strings.TrimSpace(params.Receiver),
		params.Amount,
		params.Note,
		network,
		strings.TrimSpace(params.CloseTo),
		params.AssetID,
	)
	if err != nil {
		return UnsignedTransaction{}, fmt.Errorf("failed to build asset transfer transaction: %w", err)
	}

	return UnsignedTransaction{Kind: KindAssetTransfer, Txn: built}, nil
}
