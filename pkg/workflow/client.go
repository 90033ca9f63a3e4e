package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/txn"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"go.uber.org/zap"
)

type Client struct {
	ledger    ledger.Ledger
	submitter *ledger.Submitter
	network   string
	creator   crypto.Account
	logger    *zap.Logger
}

// NewClient creates a new workflow client.
func NewClient(config ClientConfig) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var creator crypto.Account
	if strings.TrimSpace(config.CreatorMnemonic) != "" {
		creator, err = shared.ParseMnemonic(config.CreatorMnemonic)
		if err != nil {
			return nil, err
		}
	}

	ledgerClient := config.Ledger
	if ledgerClient == nil {
		ledgerClient, err = ledger.NewAlgodClient(ledger.AlgodConfig{
			Network: network,
			Address: config.AlgodAddress,
			Token:   config.AlgodToken,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
	}

	var metrics *ledger.Metrics
	if config.MetricsRegisterer != nil {
		metrics, err = ledger.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	submitter, err := ledger.NewSubmitter(ledger.SubmitterConfig{
		Ledger:        ledgerClient,
		MaxWaitRounds: config.MaxWaitRounds,
		Logger:        logger,
		Metrics:       metrics,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		ledger:    ledgerClient,
		submitter: submitter,
		network:   network,
		creator:   creator,
		logger:    logger,
	}, nil
}

// Ledger returns the ledger the client submits to.
func (client *Client) Ledger() ledger.Ledger {
	return client.ledger
}

func (client *Client) Network() string {
	return client.network
}

// Creator returns the creator account and whether one is configured.
func (client *Client) Creator() (crypto.Account, bool) {
	return client.creator, hasKey(client.creator)
}

// Balance returns the microAlgo balance of address.
func (client *Client) Balance(ctx context.Context, address string) (uint64, error) {
	state, err := client.ledger.AccountState(ctx, address)
	if err != nil {
		return 0, err
	}
	return state.Balance, nil
}

// AccountState returns the full account state of address.
func (client *Client) AccountState(ctx context.Context, address string) (ledger.AccountState, error) {
	return client.ledger.AccountState(ctx, address)
}

func (client *Client) resolveSigner(account crypto.Account) (crypto.Account, error) {
	if hasKey(account) {
		return account, nil
	}
	if hasKey(client.creator) {
		return client.creator, nil
	}
	return crypto.Account{}, ErrCreatorRequired
}

func (client *Client) signAndSubmit(
	ctx context.Context,
	signer crypto.Account,
	build func(ledger.NetworkParameters) (txn.UnsignedTransaction, error),
) (ledger.ConfirmationResult, error) {
	params, err := client.ledger.NetworkParameters(ctx)
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	unsigned, err := build(params)
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	signed, err := txn.Sign(signer, unsigned)
	if err != nil {
		return ledger.ConfirmationResult{}, err
	}

	return client.submitter.Submit(ctx, signed)
}

func hasKey(account crypto.Account) bool {
	return len(account.PrivateKey) > 0
}

func addressOf(account crypto.Account) string {
	return account.Address.String()
}
