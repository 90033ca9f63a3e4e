package ledger

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	defaultMaxReadAttempts      uint64 = 3
	defaultReadRetryInitialWait        = 500 * time.Millisecond
)

type AlgodConfig struct {
	Network string
	Address string
	Token   string
	// MaxReadAttempts bounds retries of idempotent reads. Submissions are
	// never retried.
	MaxReadAttempts uint64
	Logger          *zap.Logger
}

// AlgodClient implements Ledger against an algod REST endpoint.
type AlgodClient struct {
	algod           *algod.Client
	address         string
	maxReadAttempts uint64
	retryWait       time.Duration
	logger          *zap.Logger
}

var _ Ledger = (*AlgodClient)(nil)

// NewAlgodClient creates a new AlgodClient.
func NewAlgodClient(config AlgodConfig) (*AlgodClient, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	address := strings.TrimRight(strings.TrimSpace(config.Address), "/")
	if address == "" {
		address, err = shared.DefaultAlgodAddress(network)
		if err != nil {
			return nil, err
		}
	}
	parsedAddress, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid algod address: %w", err)
	}
	if parsedAddress.Scheme != "http" && parsedAddress.Scheme != "https" {
		return nil, fmt.Errorf("invalid algod address: scheme must be http or https")
	}
	if strings.TrimSpace(parsedAddress.Host) == "" {
		return nil, fmt.Errorf("invalid algod address: host is required")
	}

	algodClient, err := algod.MakeClient(address, strings.TrimSpace(config.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to create algod client: %w", err)
	}

	maxReadAttempts := config.MaxReadAttempts
	if maxReadAttempts == 0 {
		maxReadAttempts = defaultMaxReadAttempts
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AlgodClient{
		algod:           algodClient,
		address:         address,
		maxReadAttempts: maxReadAttempts,
		retryWait:       defaultReadRetryInitialWait,
		logger:          logger.With(zap.String("algod", address)),
	}, nil
}

// Address returns the algod endpoint the client talks to.
func (c *AlgodClient) Address() string {
	return c.address
}

// Algod exposes the underlying SDK client.
func (c *AlgodClient) Algod() *algod.Client {
	return c.algod
}

func (c *AlgodClient) NetworkParameters(ctx context.Context) (NetworkParameters, error) {
	var params NetworkParameters
	err := c.retryRead(ctx, "suggested params", func() error {
		var requestErr error
		params, requestErr = c.algod.SuggestedParams().Do(ctx)
		return requestErr
	})
	if err != nil {
		return NetworkParameters{}, fmt.Errorf("failed to fetch network parameters: %w", err)
	}
	return params, nil
}

func (c *AlgodClient) SendRawTransaction(ctx context.Context, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("signed payload is empty")
	}

	txID, err := c.algod.SendRawTransaction(payload).Do(ctx)
	if err != nil {
		return "", NewRejectedByNetworkError("", err.Error(), err)
	}
	return txID, nil
}

func (c *AlgodClient) Status(ctx context.Context) (uint64, error) {
	status, err := c.algod.Status().Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch node status: %w", err)
	}
	return status.LastRound, nil
}

func (c *AlgodClient) StatusAfterRound(ctx context.Context, round uint64) (uint64, error) {
	status, err := c.algod.StatusAfterBlock(round).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed waiting for round after %d: %w", round, err)
	}
	return status.LastRound, nil
}

func (c *AlgodClient) PendingTransaction(ctx context.Context, txID string) (PendingTransaction, error) {
	normalized := strings.TrimSpace(txID)
	if normalized == "" {
		return PendingTransaction{}, fmt.Errorf("transaction ID is required")
	}

	info, _, err := c.algod.PendingTransactionInformation(normalized).Do(ctx)
	if err != nil {
		return PendingTransaction{}, fmt.Errorf("failed to fetch pending transaction %s: %w", normalized, err)
	}

	return PendingTransaction{
		TxID:           normalized,
		ConfirmedRound: info.ConfirmedRound,
		AssetIndex:     info.AssetIndex,
		PoolError:      info.PoolError,
	}, nil
}

func (c *AlgodClient) AccountState(ctx context.Context, address string) (AccountState, error) {
	normalized := strings.TrimSpace(address)
	if normalized == "" {
		return AccountState{}, fmt.Errorf("account address is required")
	}

	var account models.Account
	err := c.retryRead(ctx, "account information", func() error {
		var requestErr error
		account, requestErr = c.algod.AccountInformation(normalized).Do(ctx)
		return requestErr
	})
	if err != nil {
		return AccountState{}, fmt.Errorf("failed to fetch account %s: %w", normalized, err)
	}

	return accountStateFromModel(normalized, account), nil
}

func (c *AlgodClient) retryRead(ctx context.Context, operation string, read func() error) error {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = c.retryWait
	policy := backoff.WithContext(backoff.WithMaxRetries(exponential, c.maxReadAttempts-1), ctx)
	return backoff.RetryNotify(read, policy, func(err error, wait time.Duration) {
		c.logger.Warn("algod read failed, retrying",
			zap.String("operation", operation),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
}

func accountStateFromModel(address string, account models.Account) AccountState {
	state := AccountState{
		Address:       address,
		Balance:       account.Amount,
		MinBalance:    account.MinBalance,
		Round:         account.Round,
		CreatedAssets: make([]CreatedAsset, 0, len(account.CreatedAssets)),
		HeldAssets:    make([]AssetHolding, 0, len(account.Assets)),
	}

	for _, asset := range account.CreatedAssets {
		state.CreatedAssets = append(state.CreatedAssets, CreatedAsset{
			Index:         asset.Index,
			Creator:       asset.Params.Creator,
			Total:         asset.Params.Total,
			Decimals:      uint32(asset.Params.Decimals),
			DefaultFrozen: asset.Params.DefaultFrozen,
			UnitName:      asset.Params.UnitName,
			Name:          asset.Params.Name,
			URL:           asset.Params.Url,
			MetadataHash:  asset.Params.MetadataHash,
			Manager:       asset.Params.Manager,
			Reserve:       asset.Params.Reserve,
			Freeze:        asset.Params.Freeze,
			Clawback:      asset.Params.Clawback,
		})
	}
	for _, holding := range account.Assets {
		state.HeldAssets = append(state.HeldAssets, AssetHolding{
			AssetID:  holding.AssetId,
			Amount:   holding.Amount,
			IsFrozen: holding.IsFrozen,
		})
	}

	return state
}
