// Package ledgertest provides an in-memory ledger.Ledger for tests. It
// verifies signatures, group IDs and validity windows, charges fees, enforces
// minimum balances and commits pooled groups all-or-nothing when a new round
// is produced.
package ledgertest

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

const (
	DefaultMinFee         uint64 = 1000
	DefaultStartRound     uint64 = 1000
	DefaultValidityWindow uint64 = 1000
	DefaultFirstAssetID   uint64 = 1001
	DefaultGenesisID             = "ledgertest-v1"
)

type Config struct {
	GenesisID      string
	GenesisHash    []byte
	MinFee         uint64
	StartRound     uint64
	ValidityWindow uint64
	FirstAssetID   uint64
}

type record struct {
	confirmedRound uint64
	assetIndex     uint64
	poolError      string
}

type pooledGroup struct {
	txns []types.Transaction
	ids  []string
}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu sync.Mutex

	genesisID      string
	genesisHash    types.Digest
	minFee         uint64
	validityWindow uint64

	round       uint64
	state       *state
	pool        []pooledGroup
	records     map[string]*record
	stalled     bool
	submissions int
}

var _ ledger.Ledger = (*Ledger)(nil)

// New creates an empty ledger.
func New(config Config) *Ledger {
	genesisID := config.GenesisID
	if genesisID == "" {
		genesisID = DefaultGenesisID
	}
	var genesisHash types.Digest
	if len(config.GenesisHash) == len(genesisHash) {
		copy(genesisHash[:], config.GenesisHash)
	} else {
		for index := range genesisHash {
			genesisHash[index] = byte(index + 1)
		}
	}
	minFee := config.MinFee
	if minFee == 0 {
		minFee = DefaultMinFee
	}
	startRound := config.StartRound
	if startRound == 0 {
		startRound = DefaultStartRound
	}
	validityWindow := config.ValidityWindow
	if validityWindow == 0 {
		validityWindow = DefaultValidityWindow
	}
	firstAssetID := config.FirstAssetID
	if firstAssetID == 0 {
		firstAssetID = DefaultFirstAssetID
	}

	return &Ledger{
		genesisID:      genesisID,
		genesisHash:    genesisHash,
		minFee:         minFee,
		validityWindow: validityWindow,
		round:          startRound,
		state:          newState(firstAssetID),
		records:        make(map[string]*record),
	}
}

// Fund credits an account outside of any transaction.
func (l *Ledger) Fund(address types.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.account(address).balance += amount
}

// SetStalled stops pooled transactions from being committed. Rounds still
// advance.
func (l *Ledger) SetStalled(stalled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stalled = stalled
}

// Round returns the last produced round.
func (l *Ledger) Round() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.round
}

// Submissions returns the number of accepted SendRawTransaction calls.
func (l *Ledger) Submissions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.submissions
}

// Balance returns the microAlgo balance of address.
func (l *Ledger) Balance(address types.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	existing, ok := l.state.accounts[address]
	if !ok {
		return 0
	}
	return existing.balance
}

func (l *Ledger) NetworkParameters(ctx context.Context) (ledger.NetworkParameters, error) {
	if err := ctx.Err(); err != nil {
		return ledger.NetworkParameters{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return ledger.NetworkParameters{
		Fee:             types.MicroAlgos(l.minFee),
		FlatFee:         true,
		MinFee:          l.minFee,
		FirstRoundValid: types.Round(l.round),
		LastRoundValid:  types.Round(l.round + l.validityWindow),
		GenesisID:       l.genesisID,
		GenesisHash:     append([]byte(nil), l.genesisHash[:]...),
	}, nil
}

func (l *Ledger) SendRawTransaction(ctx context.Context, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	signed, err := decodePayload(payload)
	if err != nil {
		return "", ledger.NewRejectedByNetworkError("", err.Error(), err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	group := pooledGroup{
		txns: make([]types.Transaction, len(signed)),
		ids:  make([]string, len(signed)),
	}
	for index, stx := range signed {
		txID := crypto.GetTxID(stx.Txn)
		if err := l.checkSigned(stx, txID); err != nil {
			return "", ledger.NewRejectedByNetworkError(txID, err.Error(), nil)
		}
		group.txns[index] = stx.Txn
		group.ids[index] = txID
	}
	if err := checkGroup(group.txns); err != nil {
		return "", ledger.NewRejectedByNetworkError(group.ids[0], err.Error(), nil)
	}

	// evaluate against the state the pool will produce
	speculative, _ := applyPool(l.state, l.pool)
	speculative = speculative.clone()
	if err := applyGroup(speculative, group.txns); err != nil {
		return "", ledger.NewRejectedByNetworkError(group.ids[0], err.Error(), nil)
	}

	l.pool = append(l.pool, group)
	for _, txID := range group.ids {
		l.records[txID] = &record{}
	}
	l.submissions++

	return group.ids[0], nil
}

func (l *Ledger) Status(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return l.Round(), nil
}

// StatusAfterRound produces a new round when round is the latest one.
func (l *Ledger) StatusAfterRound(ctx context.Context, round uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.round > round {
		return l.round, nil
	}
	l.produceRound()
	return l.round, nil
}

func (l *Ledger) PendingTransaction(ctx context.Context, txID string) (ledger.PendingTransaction, error) {
	if err := ctx.Err(); err != nil {
		return ledger.PendingTransaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	found, ok := l.records[txID]
	if !ok {
		return ledger.PendingTransaction{}, fmt.Errorf("transaction %s not found", txID)
	}
	return ledger.PendingTransaction{
		TxID:           txID,
		ConfirmedRound: found.confirmedRound,
		AssetIndex:     found.assetIndex,
		PoolError:      found.poolError,
	}, nil
}

func (l *Ledger) AccountState(ctx context.Context, address string) (ledger.AccountState, error) {
	if err := ctx.Err(); err != nil {
		return ledger.AccountState{}, err
	}
	decoded, err := types.DecodeAddress(address)
	if err != nil {
		return ledger.AccountState{}, fmt.Errorf("invalid address %q: %w", address, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	accountState := ledger.AccountState{
		Address:    address,
		MinBalance: l.state.minBalance(decoded),
		Round:      l.round,
	}
	if existing, ok := l.state.accounts[decoded]; ok {
		accountState.Balance = existing.balance
		for assetID, held := range existing.holdings {
			accountState.HeldAssets = append(accountState.HeldAssets, ledger.AssetHolding{
				AssetID:  assetID,
				Amount:   held.amount,
				IsFrozen: held.frozen,
			})
		}
	}
	for _, created := range l.state.createdBy(decoded) {
		accountState.CreatedAssets = append(accountState.CreatedAssets, createdAssetView(created))
	}

	return accountState, nil
}

func (l *Ledger) produceRound() {
	l.round++
	if l.stalled {
		return
	}

	next, outcomes := applyPool(l.state, l.pool)
	l.state = next
	for index, group := range l.pool {
		outcome := outcomes[index]
		for member, txID := range group.ids {
			if outcome.err != nil {
				l.records[txID].poolError = outcome.err.Error()
				continue
			}
			l.records[txID].confirmedRound = l.round
			l.records[txID].assetIndex = outcome.assetIndexes[member]
		}
	}
	l.pool = nil
}

type poolOutcome struct {
	assetIndexes []uint64
	err          error
}

// applyPool applies pooled groups in order on copies of current. A failing
// group is skipped and leaves no trace; later groups still apply. current is
// returned unchanged when every group fails.
func applyPool(current *state, pool []pooledGroup) (*state, []poolOutcome) {
	outcomes := make([]poolOutcome, len(pool))
	for index, group := range pool {
		next := current.clone()
		assetIndexes, err := applyGroupWithResults(next, group.txns)
		outcomes[index] = poolOutcome{assetIndexes: assetIndexes, err: err}
		if err != nil {
			continue
		}
		current = next
	}
	return current, outcomes
}

func (l *Ledger) checkSigned(stx types.SignedTxn, txID string) error {
	if _, known := l.records[txID]; known {
		return fmt.Errorf("transaction already in ledger: %s", txID)
	}
	if stx.Txn.GenesisHash != l.genesisHash {
		return fmt.Errorf("genesis hash mismatch")
	}
	if stx.Txn.GenesisID != "" && stx.Txn.GenesisID != l.genesisID {
		return fmt.Errorf("genesis ID mismatch: %s", stx.Txn.GenesisID)
	}
	next := l.round + 1
	if uint64(stx.Txn.FirstValid) > next || uint64(stx.Txn.LastValid) < next {
		return fmt.Errorf("txn dead: round %d outside [%d--%d]", next, stx.Txn.FirstValid, stx.Txn.LastValid)
	}
	if uint64(stx.Txn.Fee) < l.minFee {
		return fmt.Errorf("fee %d below min %d", stx.Txn.Fee, l.minFee)
	}

	// rekeyed accounts are not modelled: only the sender's own key may sign
	if stx.AuthAddr != (types.Address{}) && stx.AuthAddr != stx.Txn.Sender {
		return fmt.Errorf("should have been authorized by %s but was actually authorized by %s", stx.Txn.Sender, stx.AuthAddr)
	}
	signer := stx.Txn.Sender
	message := append([]byte("TX"), msgpack.Encode(stx.Txn)...)
	if !ed25519.Verify(ed25519.PublicKey(signer[:]), message, stx.Sig[:]) {
		return fmt.Errorf("signature validation failed for sender %s", stx.Txn.Sender)
	}
	return nil
}

func checkGroup(txns []types.Transaction) error {
	var empty types.Digest
	groupID := txns[0].Group
	if len(txns) > 1 && groupID == empty {
		return fmt.Errorf("multiple transactions submitted without a group")
	}
	if groupID == empty {
		return nil
	}

	cleared := make([]types.Transaction, len(txns))
	for index, member := range txns {
		if member.Group != groupID {
			return fmt.Errorf("transaction %d has group %x, expected %x", index, member.Group[:], groupID[:])
		}
		member.Group = empty
		cleared[index] = member
	}
	expected, err := crypto.ComputeGroupID(cleared)
	if err != nil {
		return err
	}
	if expected != groupID {
		return fmt.Errorf("incomplete group: %x != %x", groupID[:], expected[:])
	}
	return nil
}

func applyGroup(target *state, txns []types.Transaction) error {
	_, err := applyGroupWithResults(target, txns)
	return err
}

func applyGroupWithResults(target *state, txns []types.Transaction) ([]uint64, error) {
	assetIndexes := make([]uint64, len(txns))
	for index, member := range txns {
		created, err := target.apply(member)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", index, err)
		}
		assetIndexes[index] = created
	}
	return assetIndexes, nil
}

func decodePayload(payload []byte) ([]types.SignedTxn, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	decoder := msgpack.NewDecoder(bytes.NewReader(payload))
	signed := make([]types.SignedTxn, 0, 1)
	for {
		var stx types.SignedTxn
		err := decoder.Decode(&stx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed signed transaction: %w", err)
		}
		signed = append(signed, stx)
	}
	if len(signed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	return signed, nil
}

func createdAssetView(created *asset) ledger.CreatedAsset {
	view := ledger.CreatedAsset{
		Index:         created.index,
		Creator:       created.creator.String(),
		Total:         created.params.Total,
		Decimals:      created.params.Decimals,
		DefaultFrozen: created.params.DefaultFrozen,
		UnitName:      created.params.UnitName,
		Name:          created.params.AssetName,
		URL:           created.params.URL,
		Manager:       addressOrEmpty(created.params.Manager),
		Reserve:       addressOrEmpty(created.params.Reserve),
		Freeze:        addressOrEmpty(created.params.Freeze),
		Clawback:      addressOrEmpty(created.params.Clawback),
	}
	if created.params.MetadataHash != ([32]byte{}) {
		view.MetadataHash = append([]byte(nil), created.params.MetadataHash[:]...)
	}
	return view
}

func addressOrEmpty(address types.Address) string {
	if address == (types.Address{}) {
		return ""
	}
	return address.String()
}
