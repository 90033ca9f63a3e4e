package ledgertest

import (
	"fmt"
	"sort"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

const (
	MinAccountBalance uint64 = 100000
	MinAssetBalance   uint64 = 100000
)

type account struct {
	balance  uint64
	holdings map[uint64]*holding
}

type holding struct {
	amount uint64
	frozen bool
}

type asset struct {
	index   uint64
	creator types.Address
	params  types.AssetParams
}

type state struct {
	accounts    map[types.Address]*account
	assets      map[uint64]*asset
	nextAssetID uint64
}

func newState(firstAssetID uint64) *state {
	return &state{
		accounts:    make(map[types.Address]*account),
		assets:      make(map[uint64]*asset),
		nextAssetID: firstAssetID,
	}
}

func (s *state) clone() *state {
	cloned := newState(s.nextAssetID)
	for address, source := range s.accounts {
		copied := &account{balance: source.balance, holdings: make(map[uint64]*holding, len(source.holdings))}
		for assetID, sourceHolding := range source.holdings {
			copiedHolding := *sourceHolding
			copied.holdings[assetID] = &copiedHolding
		}
		cloned.accounts[address] = copied
	}
	for assetID, source := range s.assets {
		copied := *source
		cloned.assets[assetID] = &copied
	}
	return cloned
}

func (s *state) account(address types.Address) *account {
	existing, ok := s.accounts[address]
	if !ok {
		existing = &account{holdings: make(map[uint64]*holding)}
		s.accounts[address] = existing
	}
	return existing
}

func (s *state) minBalance(address types.Address) uint64 {
	existing, ok := s.accounts[address]
	if !ok {
		return MinAccountBalance
	}
	return MinAccountBalance + MinAssetBalance*uint64(len(existing.holdings))
}

func (s *state) createdBy(address types.Address) []*asset {
	created := make([]*asset, 0)
	for _, candidate := range s.assets {
		if candidate.creator == address {
			created = append(created, candidate)
		}
	}
	sort.Slice(created, func(left, right int) bool {
		return created[left].index < created[right].index
	})
	return created
}

// apply executes one transaction and returns the index of a created asset.
func (s *state) apply(tx types.Transaction) (uint64, error) {
	sender := s.account(tx.Sender)
	fee := uint64(tx.Fee)
	if sender.balance < fee {
		return 0, fmt.Errorf("overspend: account %s balance %d below fee %d", tx.Sender, sender.balance, fee)
	}
	sender.balance -= fee

	var createdAsset uint64
	var err error
	touched := []types.Address{tx.Sender}

	switch tx.Type {
	case types.PaymentTx:
		touched, err = s.applyPayment(tx, sender, touched)
	case types.AssetConfigTx:
		createdAsset, err = s.applyAssetConfig(tx, sender)
	case types.AssetTransferTx:
		err = s.applyAssetTransfer(tx, sender)
	default:
		err = fmt.Errorf("unsupported transaction type %q", tx.Type)
	}
	if err != nil {
		return 0, err
	}

	for _, address := range touched {
		existing, ok := s.accounts[address]
		if !ok || existing.balance == 0 {
			continue
		}
		if minimum := s.minBalance(address); existing.balance < minimum {
			return 0, fmt.Errorf("account %s balance %d below min %d", address, existing.balance, minimum)
		}
	}

	return createdAsset, nil
}

func (s *state) applyPayment(tx types.Transaction, sender *account, touched []types.Address) ([]types.Address, error) {
	amount := uint64(tx.Amount)
	if sender.balance < amount {
		return nil, fmt.Errorf("overspend: account %s balance %d below amount %d", tx.Sender, sender.balance, amount)
	}
	sender.balance -= amount
	s.account(tx.Receiver).balance += amount
	touched = append(touched, tx.Receiver)

	if tx.CloseRemainderTo != (types.Address{}) {
		if len(sender.holdings) > 0 {
			return nil, fmt.Errorf("cannot close account %s holding assets", tx.Sender)
		}
		s.account(tx.CloseRemainderTo).balance += sender.balance
		sender.balance = 0
		touched = append(touched, tx.CloseRemainderTo)
	}

	return touched, nil
}

func (s *state) applyAssetConfig(tx types.Transaction, sender *account) (uint64, error) {
	assetID := uint64(tx.ConfigAsset)
	if assetID == 0 {
		created := &asset{index: s.nextAssetID, creator: tx.Sender, params: tx.AssetParams}
		s.assets[created.index] = created
		s.nextAssetID++
		sender.holdings[created.index] = &holding{amount: tx.AssetParams.Total}
		return created.index, nil
	}

	existing, ok := s.assets[assetID]
	if !ok {
		return 0, fmt.Errorf("asset %d does not exist", assetID)
	}
	if existing.params.Manager == (types.Address{}) {
		return 0, fmt.Errorf("asset %d is not mutable", assetID)
	}
	if existing.params.Manager != tx.Sender {
		return 0, fmt.Errorf("this transaction should be issued by the manager of asset %d", assetID)
	}

	if tx.AssetParams == (types.AssetParams{}) {
		creator := s.account(existing.creator)
		creatorHolding, held := creator.holdings[assetID]
		if !held || creatorHolding.amount != existing.params.Total {
			return 0, fmt.Errorf("cannot destroy asset %d while units are outstanding", assetID)
		}
		delete(creator.holdings, assetID)
		delete(s.assets, assetID)
		return 0, nil
	}

	existing.params.Manager = tx.AssetParams.Manager
	existing.params.Reserve = tx.AssetParams.Reserve
	existing.params.Freeze = tx.AssetParams.Freeze
	existing.params.Clawback = tx.AssetParams.Clawback
	return 0, nil
}

func (s *state) applyAssetTransfer(tx types.Transaction, sender *account) error {
	assetID := uint64(tx.XferAsset)
	existing, ok := s.assets[assetID]
	if !ok {
		return fmt.Errorf("asset %d does not exist", assetID)
	}

	receiver := s.account(tx.AssetReceiver)
	if tx.Sender == tx.AssetReceiver && tx.AssetAmount == 0 && tx.AssetSender == (types.Address{}) {
		if _, held := sender.holdings[assetID]; !held {
			sender.holdings[assetID] = &holding{frozen: existing.params.DefaultFrozen}
		}
		return nil
	}

	source := sender
	sourceAddress := tx.Sender
	clawback := tx.AssetSender != (types.Address{})
	if clawback {
		if existing.params.Clawback != tx.Sender {
			return fmt.Errorf("account %s is not the clawback of asset %d", tx.Sender, assetID)
		}
		source = s.account(tx.AssetSender)
		sourceAddress = tx.AssetSender
	}

	sourceHolding, held := source.holdings[assetID]
	if !held {
		return fmt.Errorf("account %s has not opted in to asset %d", sourceAddress, assetID)
	}
	receiverHolding, held := receiver.holdings[assetID]
	if !held {
		return fmt.Errorf("receiver %s has not opted in to asset %d", tx.AssetReceiver, assetID)
	}
	if !clawback && (sourceHolding.frozen || receiverHolding.frozen) {
		return fmt.Errorf("asset %d is frozen", assetID)
	}
	if sourceHolding.amount < tx.AssetAmount {
		return fmt.Errorf("underflow on asset %d: %d < %d", assetID, sourceHolding.amount, tx.AssetAmount)
	}
	sourceHolding.amount -= tx.AssetAmount
	receiverHolding.amount += tx.AssetAmount

	if tx.AssetCloseTo != (types.Address{}) {
		closeHolding, held := s.account(tx.AssetCloseTo).holdings[assetID]
		if !held {
			return fmt.Errorf("close target %s has not opted in to asset %d", tx.AssetCloseTo, assetID)
		}
		closeHolding.amount += sourceHolding.amount
		delete(source.holdings, assetID)
	}

	return nil
}
