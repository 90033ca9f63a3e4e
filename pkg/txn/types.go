package txn

import (
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

type Kind string

const (
	KindPayment       Kind = "payment"
	KindAssetCreate   Kind = "asset-create"
	KindAssetConfig   Kind = "asset-config"
	KindAssetOptIn    Kind = "asset-opt-in"
	KindAssetTransfer Kind = "asset-transfer"
)

const (
	MaxGroupSize       = 16
	MaxUnitNameLength  = 8
	MaxAssetNameLength = 32
	MaxAssetURLLength  = 96
	MaxAssetDecimals   = 19
	MetadataHashLength = 32
	MaxNoteLength      = 1024
)

// GroupID is the digest shared by every member of an atomic group.
type GroupID = types.Digest

// UnsignedTransaction pairs an SDK transaction with the intent that built it.
type UnsignedTransaction struct {
	Kind Kind
	Txn  types.Transaction
}

// ID returns the transaction ID the ledger will report for this transaction.
func (u UnsignedTransaction) ID() string {
	return crypto.GetTxID(u.Txn)
}

// Group returns the group ID carried by the transaction, zero when ungrouped.
func (u UnsignedTransaction) Group() GroupID {
	return u.Txn.Group
}

// Encode returns the canonical msgpack encoding of the transaction.
func (u UnsignedTransaction) Encode() []byte {
	return msgpack.Encode(u.Txn)
}

// SignedTransaction is a transaction signed by exactly one key.
type SignedTransaction struct {
	TxID   string
	Blob   []byte
	Kind   Kind
	Txn    types.Transaction
	Signer types.Address
}

// Group returns the group ID carried by the signed transaction.
func (s SignedTransaction) Group() GroupID {
	return s.Txn.Group
}

type PaymentTxParams struct {
	Sender           string
	Receiver         string
	Amount           uint64
	CloseRemainderTo string
	Note             []byte
}

type AssetCreateTxParams struct {
	Creator       string
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	UnitName      string
	AssetName     string
	URL           string
	MetadataHash  []byte
	Manager       string
	Reserve       string
	Freeze        string
	Clawback      string
	Note          []byte
}

type NFTCreateTxParams struct {
	Creator       string
	UnitName      string
	AssetName     string
	URL           string
	MetadataHash  []byte
	DefaultFrozen bool
	Manager       string
	Reserve       string
	Freeze        string
	Clawback      string
	Note          []byte
}

// AssetConfigTxParams changes the control addresses of an existing asset.
// Manager is the current manager and the transaction sender.
type AssetConfigTxParams struct {
	Manager     string
	AssetID     uint64
	NewManager  string
	NewReserve  string
	NewFreeze   string
	NewClawback string
	// AllowEmptyAddresses permits clearing a role. A cleared role can never
	// be set again.
	AllowEmptyAddresses bool
	Note                []byte
}

type AssetOptInTxParams struct {
	Account string
	AssetID uint64
	Note    []byte
}

type AssetTransferTxParams struct {
	Sender   string
	Receiver string
	AssetID  uint64
	Amount   uint64
	CloseTo  string
	Note     []byte
}
