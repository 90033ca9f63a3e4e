package workflow

import (
	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	DefaultFundAmount         uint64 = 1_000_000
	DefaultReceiverFunding    uint64 = 300_000
	DefaultLifecycleTransfer  uint64 = 100
	DefaultScenarioAmountAToC uint64 = 100_000
	DefaultScenarioAmountBToA uint64 = 200_000
)

type ClientConfig struct {
	Network      string
	AlgodAddress string
	AlgodToken   string
	// CreatorMnemonic is optional. Without it, operations that default to the
	// creator fail with ErrCreatorRequired.
	CreatorMnemonic string
	MaxWaitRounds   uint64
	Logger          *zap.Logger
	// MetricsRegisterer receives the submission collectors when set.
	MetricsRegisterer prometheus.Registerer
	// Ledger replaces the algod client built from the address and token.
	Ledger ledger.Ledger
}

type PaymentOptions struct {
	// From signs the payment. The creator is used when From is zero.
	From             crypto.Account
	To               string
	Amount           uint64
	CloseRemainderTo string
	Note             []byte
}

// PaymentLeg is one payment of an atomic transfer.
type PaymentLeg struct {
	From   crypto.Account
	To     string
	Amount uint64
	Note   []byte
}

type AtomicTransferResult struct {
	GroupID      txn.GroupID
	Confirmation ledger.ConfirmationResult
}

type CreateAssetOptions struct {
	// Creator signs the creation. The client creator is used when zero.
	Creator       crypto.Account
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	UnitName      string
	AssetName     string
	URL           string
	MetadataHash  []byte
	// Control addresses. Empty leaves the role unset for good.
	Manager  string
	Reserve  string
	Freeze   string
	Clawback string
	Note     []byte
}

type CreateNFTOptions struct {
	Creator       crypto.Account
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

// AssetCreation is a confirmed asset creation together with the asset as
// the ledger reports it afterwards.
type AssetCreation struct {
	AssetID      uint64
	Asset        ledger.CreatedAsset
	Confirmation ledger.ConfirmationResult
}

type ModifyAssetOptions struct {
	// Manager is the current manager and signs the change. The creator is
	// used when zero.
	Manager             crypto.Account
	AssetID             uint64
	NewManager          string
	NewReserve          string
	NewFreeze           string
	NewClawback         string
	AllowEmptyAddresses bool
	Note                []byte
}

type AssetModification struct {
	Asset        ledger.CreatedAsset
	Confirmation ledger.ConfirmationResult
}

type TransferAssetOptions struct {
	// Sender signs the transfer. The creator is used when zero.
	Sender   crypto.Account
	Receiver string
	AssetID  uint64
	Amount   uint64
	CloseTo  string
	Note     []byte
}

type AtomicScenarioOptions struct {
	// Accounts are A, B and C. Missing accounts are generated.
	Accounts   []crypto.Account
	FundAmount uint64
	AmountAToC uint64
	AmountBToA uint64
}

type AccountBalance struct {
	Address  string
	Before   uint64
	Expected uint64
	After    uint64
}

type AtomicScenarioReport struct {
	Accounts []crypto.Account
	Funding  []ledger.ConfirmationResult
	Transfer AtomicTransferResult
	Balances []AccountBalance
}

// Matches reports whether every balance after the transfer equals the one
// computed from amounts and fees.
func (report AtomicScenarioReport) Matches() bool {
	for _, balance := range report.Balances {
		if balance.After != balance.Expected {
			return false
		}
	}
	return len(report.Balances) > 0
}

type LifecycleStage string

const (
	StageCreate   LifecycleStage = "create"
	StageModify   LifecycleStage = "modify"
	StageFund     LifecycleStage = "fund-receiver"
	StageOptIn    LifecycleStage = "opt-in"
	StageTransfer LifecycleStage = "transfer"
	StageComplete LifecycleStage = "complete"
)

type LifecycleProgress struct {
	Stage      LifecycleStage
	Percentage int
	AssetID    uint64
	TxID       string
}

type LifecycleProgressCallback func(LifecycleProgress)

type AssetLifecycleOptions struct {
	Asset CreateAssetOptions
	// Receiver opts in and receives the transfer. Generated when zero.
	Receiver        crypto.Account
	ReceiverFunding uint64
	// NewClawback replaces the clawback after creation. Generated when empty.
	NewClawback      string
	TransferAmount   uint64
	ProgressCallback LifecycleProgressCallback
}

type AssetLifecycleReport struct {
	AssetID         uint64
	Receiver        crypto.Account
	Created         ledger.CreatedAsset
	Modified        ledger.CreatedAsset
	ReceiverState   ledger.AccountState
	ReceiverHolding ledger.AssetHolding
	Confirmations   map[LifecycleStage]ledger.ConfirmationResult
}
