package ledger

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

const DefaultMaxWaitRounds uint64 = 4

// NetworkParameters carries the fee schedule, validity window and genesis
// binding needed to build a transaction.
type NetworkParameters = types.SuggestedParams

// Ledger is the set of node calls the workflows depend on.
type Ledger interface {
	NetworkParameters(ctx context.Context) (NetworkParameters, error)
	SendRawTransaction(ctx context.Context, payload []byte) (string, error)
	// Status returns the last round the node has seen.
	Status(ctx context.Context) (uint64, error)
	// StatusAfterRound blocks until a round after round exists and returns it.
	StatusAfterRound(ctx context.Context, round uint64) (uint64, error)
	PendingTransaction(ctx context.Context, txID string) (PendingTransaction, error)
	AccountState(ctx context.Context, address string) (AccountState, error)
}

type PendingTransaction struct {
	TxID           string
	ConfirmedRound uint64
	AssetIndex     uint64
	PoolError      string
}

type AccountState struct {
	Address       string
	Balance       uint64
	MinBalance    uint64
	Round         uint64
	CreatedAssets []CreatedAsset
	HeldAssets    []AssetHolding
}

// CreatedAsset returns the asset created by the account with the given index.
func (s AccountState) CreatedAsset(assetID uint64) (CreatedAsset, bool) {
	for _, asset := range s.CreatedAssets {
		if asset.Index == assetID {
			return asset, true
		}
	}
	return CreatedAsset{}, false
}

// HeldAsset returns the account's holding of the given asset.
func (s AccountState) HeldAsset(assetID uint64) (AssetHolding, bool) {
	for _, holding := range s.HeldAssets {
		if holding.AssetID == assetID {
			return holding, true
		}
	}
	return AssetHolding{}, false
}

type CreatedAsset struct {
	Index         uint64
	Creator       string
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	UnitName      string
	Name          string
	URL           string
	MetadataHash  []byte
	Manager       string
	Reserve       string
	Freeze        string
	Clawback      string
}

type AssetHolding struct {
	AssetID  uint64
	Amount   uint64
	IsFrozen bool
}

// ConfirmationResult describes a confirmed transaction or atomic group. For a
// group, TxID and AssetIndex refer to the first member and Members lists all
// of them in submission order.
type ConfirmationResult struct {
	TxID           string
	ConfirmedRound uint64
	AssetIndex     uint64
	GroupID        types.Digest
	Members        []MemberResult
}

type MemberResult struct {
	TxID           string
	ConfirmedRound uint64
	AssetIndex     uint64
	Fee            uint64
}
