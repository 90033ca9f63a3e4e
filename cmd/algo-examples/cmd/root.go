// Package cmd implements the algo-examples command line tool.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ClientFactory builds the workflow client a command runs against.
type ClientFactory func(config shared.OperatorConfig, logger *zap.Logger) (*workflow.Client, error)

type rootOptions struct {
	network     string
	algodServer string
	algodToken  string
	waitRounds  uint64
	logEnv      string

	newClient ClientFactory
}

func Execute() {
	if err := NewRootCommand(nil).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand assembles the command tree. A nil factory connects to algod
// using the operator configuration.
func NewRootCommand(factory ClientFactory) *cobra.Command {
	if factory == nil {
		factory = newAlgodWorkflowClient
	}
	options := &rootOptions{newClient: factory}

	rootCmd := &cobra.Command{
		Use:           "algo-examples",
		Short:         "Create assets and NFTs, move them, and submit atomic transfers on Algorand",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.network, "network", "", "network: mainnet, testnet, betanet or localnet (env ALGORAND_NETWORK)")
	flags.StringVar(&options.algodServer, "algod-server", "", "algod URL including port (env ALGOD_SERVER, ALGOD_PORT)")
	flags.StringVar(&options.algodToken, "algod-token", "", "algod API token (env ALGOD_TOKEN)")
	flags.Uint64Var(&options.waitRounds, "wait-rounds", 0, "rounds to wait for confirmation (env ALGOD_WAIT_ROUNDS)")
	flags.StringVar(&options.logEnv, "log-env", "", "development, production or none (env LOG_ENV)")

	rootCmd.AddCommand(
		newCreateAssetCommand(options),
		newCreateNFTCommand(options),
		newModifyAssetCommand(options),
		newOptInCommand(options),
		newTransferAssetCommand(options),
		newAssetLifecycleCommand(options),
		newFundCommand(options),
		newAtomicTransferCommand(options),
		newAccountCommand(options),
	)
	return rootCmd
}

func (options *rootOptions) client(cmd *cobra.Command) (*workflow.Client, error) {
	config, err := shared.LoadOperatorConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("network") {
		network, err := shared.NormalizeNetwork(options.network)
		if err != nil {
			return nil, err
		}
		config.Network = network
		if !flags.Changed("algod-server") {
			config.AlgodAddress = ""
		}
	}
	if flags.Changed("algod-server") {
		config.AlgodAddress = options.algodServer
	}
	if flags.Changed("algod-token") {
		config.AlgodToken = options.algodToken
	}
	if flags.Changed("wait-rounds") {
		config.MaxWaitRounds = options.waitRounds
	}
	if flags.Changed("log-env") {
		config.LogEnv = options.logEnv
	}

	logger, err := shared.NewLogger(config.LogEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return options.newClient(config, logger)
}

func newAlgodWorkflowClient(config shared.OperatorConfig, logger *zap.Logger) (*workflow.Client, error) {
	return workflow.NewClient(workflow.ClientConfig{
		Network:         config.Network,
		AlgodAddress:    config.AlgodAddress,
		AlgodToken:      config.AlgodToken,
		CreatorMnemonic: config.CreatorMnemonic,
		MaxWaitRounds:   config.MaxWaitRounds,
		Logger:          logger,
	})
}
