package cmd

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/algofoundry/asset-workflows-go/pkg/ledger"
	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/workflow"
	"github.com/spf13/cobra"
)

func newCreateAssetCommand(root *rootOptions) *cobra.Command {
	var (
		total         uint64
		decimals      uint32
		defaultFrozen bool
		unitName      string
		assetName     string
		url           string
		metadataHash  string
		manager       string
		reserve       string
		freeze        string
		clawback      string
	)

	cmd := &cobra.Command{
		Use:   "create-asset",
		Short: "Create a fungible asset owned by the creator",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			creator, ok := client.Creator()
			if !ok {
				return workflow.ErrCreatorRequired
			}
			hash, err := decodeMetadataHash(metadataHash)
			if err != nil {
				return err
			}

			// every role defaults to the creator
			creatorAddress := creator.Address.String()
			created, err := client.CreateAsset(cmd.Context(), workflow.CreateAssetOptions{
				Total:         total,
				Decimals:      decimals,
				DefaultFrozen: defaultFrozen,
				UnitName:      unitName,
				AssetName:     assetName,
				URL:           url,
				MetadataHash:  hash,
				Manager:       valueOr(manager, creatorAddress),
				Reserve:       valueOr(reserve, creatorAddress),
				Freeze:        valueOr(freeze, creatorAddress),
				Clawback:      valueOr(clawback, creatorAddress),
			})
			if err != nil {
				return err
			}

			printConfirmation(cmd.OutOrStdout(), created.Confirmation)
			printCreatedAsset(cmd.OutOrStdout(), created.Asset)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&total, "total", 1000000, "total base units to mint")
	flags.Uint32Var(&decimals, "decimals", 0, "decimal places of one unit")
	flags.BoolVar(&defaultFrozen, "default-frozen", false, "freeze new holdings by default")
	flags.StringVar(&unitName, "unit-name", "TA", "unit name, at most 8 bytes")
	flags.StringVar(&assetName, "asset-name", "TESTASSET", "asset name, at most 32 bytes")
	flags.StringVar(&url, "url", "website", "asset URL, at most 96 bytes")
	flags.StringVar(&metadataHash, "metadata-hash", "", "hex encoded 32-byte metadata hash")
	flags.StringVar(&manager, "manager", "", "manager address (default creator)")
	flags.StringVar(&reserve, "reserve", "", "reserve address (default creator)")
	flags.StringVar(&freeze, "freeze", "", "freeze address (default creator)")
	flags.StringVar(&clawback, "clawback", "", "clawback address (default creator)")
	return cmd
}

func newCreateNFTCommand(root *rootOptions) *cobra.Command {
	var (
		unitName     string
		assetName    string
		url          string
		metadataHash string
	)

	cmd := &cobra.Command{
		Use:   "create-nft",
		Short: "Create an NFT managed by the creator",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			hash, err := decodeMetadataHash(metadataHash)
			if err != nil {
				return err
			}

			created, err := client.CreateNFT(cmd.Context(), workflow.CreateNFTOptions{
				UnitName:     unitName,
				AssetName:    assetName,
				URL:          url,
				MetadataHash: hash,
			})
			if err != nil {
				return err
			}

			printConfirmation(cmd.OutOrStdout(), created.Confirmation)
			printCreatedAsset(cmd.OutOrStdout(), created.Asset)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&unitName, "unit-name", "AFNFT", "unit name, at most 8 bytes")
	flags.StringVar(&assetName, "asset-name", "Algo Foundry NFT", "asset name, at most 32 bytes")
	flags.StringVar(&url, "url", "https://path/to/my/nft/asset/metadata.json", "metadata URL, at most 96 bytes")
	flags.StringVar(&metadataHash, "metadata-hash", "", "hex encoded 32-byte metadata hash")
	return cmd
}

func newModifyAssetCommand(root *rootOptions) *cobra.Command {
	var (
		assetID    uint64
		manager    string
		reserve    string
		freeze     string
		clawback   string
		allowEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "modify-asset",
		Short: "Change the control addresses of an asset managed by the creator",
		Long:  "Change the control addresses of an asset managed by the creator. Roles without a flag keep their current address.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			creator, ok := client.Creator()
			if !ok {
				return workflow.ErrCreatorRequired
			}

			current, err := client.GetCreatedAsset(cmd.Context(), creator.Address.String(), assetID)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			modified, err := client.ModifyAsset(cmd.Context(), workflow.ModifyAssetOptions{
				AssetID:             assetID,
				NewManager:          flagOr(flags.Changed("manager"), manager, current.Manager),
				NewReserve:          flagOr(flags.Changed("reserve"), reserve, current.Reserve),
				NewFreeze:           flagOr(flags.Changed("freeze"), freeze, current.Freeze),
				NewClawback:         flagOr(flags.Changed("clawback"), clawback, current.Clawback),
				AllowEmptyAddresses: allowEmpty,
			})
			if err != nil {
				return err
			}

			printConfirmation(cmd.OutOrStdout(), modified.Confirmation)
			if modified.Asset.Index != 0 {
				printCreatedAsset(cmd.OutOrStdout(), modified.Asset)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&assetID, "asset-id", 0, "asset to modify")
	flags.StringVar(&manager, "manager", "", "new manager address")
	flags.StringVar(&reserve, "reserve", "", "new reserve address")
	flags.StringVar(&freeze, "freeze", "", "new freeze address")
	flags.StringVar(&clawback, "clawback", "", "new clawback address")
	flags.BoolVar(&allowEmpty, "allow-empty", false, "allow clearing a role permanently")
	_ = cmd.MarkFlagRequired("asset-id")
	return cmd
}

func newOptInCommand(root *rootOptions) *cobra.Command {
	var (
		assetID         uint64
		accountMnemonic string
	)

	cmd := &cobra.Command{
		Use:   "opt-in",
		Short: "Opt an account into an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			account, err := shared.ParseMnemonic(accountMnemonic)
			if err != nil {
				return err
			}

			result, err := client.OptIn(cmd.Context(), account, assetID)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&assetID, "asset-id", 0, "asset to opt into")
	flags.StringVar(&accountMnemonic, "mnemonic", "", "mnemonic of the account opting in")
	_ = cmd.MarkFlagRequired("asset-id")
	_ = cmd.MarkFlagRequired("mnemonic")
	return cmd
}

func newTransferAssetCommand(root *rootOptions) *cobra.Command {
	var (
		assetID  uint64
		receiver string
		amount   string
		decimals uint32
		closeTo  string
	)

	cmd := &cobra.Command{
		Use:   "transfer-asset",
		Short: "Transfer asset units from the creator to an opted-in receiver",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			units, err := shared.ParseAssetAmount(amount, decimals)
			if err != nil {
				return err
			}

			result, err := client.TransferAsset(cmd.Context(), workflow.TransferAssetOptions{
				Receiver: receiver,
				AssetID:  assetID,
				Amount:   units,
				CloseTo:  closeTo,
			})
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&assetID, "asset-id", 0, "asset to transfer")
	flags.StringVar(&receiver, "to", "", "receiver address")
	flags.StringVar(&amount, "amount", "", "amount in whole units, e.g. 1.5")
	flags.Uint32Var(&decimals, "decimals", 0, "decimal places of the asset")
	flags.StringVar(&closeTo, "close-to", "", "send the remaining holding here and opt out")
	_ = cmd.MarkFlagRequired("asset-id")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newAssetLifecycleCommand(root *rootOptions) *cobra.Command {
	var transfer uint64

	cmd := &cobra.Command{
		Use:   "asset-lifecycle",
		Short: "Create an asset, move its clawback, then opt in a new account and transfer to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report, err := client.RunAssetLifecycle(cmd.Context(), workflow.AssetLifecycleOptions{
				Asset: workflow.CreateAssetOptions{
					Total:     1000000,
					UnitName:  "TA",
					AssetName: "TESTASSET",
					URL:       "website",
				},
				TransferAmount: transfer,
				ProgressCallback: func(progress workflow.LifecycleProgress) {
					fmt.Fprintf(out, "[%3d%%] %s asset=%d txid=%s\n", progress.Percentage, progress.Stage, progress.AssetID, progress.TxID)
				},
			})
			if err != nil {
				return err
			}

			printCreatedAsset(out, report.Modified)
			fmt.Fprintf(out, "receiver %s holds %d of asset %d\n",
				report.Receiver.Address, report.ReceiverHolding.Amount, report.AssetID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&transfer, "amount", workflow.DefaultLifecycleTransfer, "base units to transfer to the receiver")
	return cmd
}

func decodeMetadataHash(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	hash, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata hash: %w", err)
	}
	return hash, nil
}

func valueOr(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func flagOr(changed bool, value string, fallback string) string {
	if changed {
		return value
	}
	return fallback
}

func printConfirmation(out io.Writer, result ledger.ConfirmationResult) {
	fmt.Fprintf(out, "transaction %s confirmed in round %d\n", result.TxID, result.ConfirmedRound)
}

func printCreatedAsset(out io.Writer, asset ledger.CreatedAsset) {
	fmt.Fprintf(out, "asset %d %q (%s)\n", asset.Index, asset.Name, asset.UnitName)
	fmt.Fprintf(out, "  total:    %s\n", shared.FormatAssetAmount(asset.Total, asset.Decimals))
	fmt.Fprintf(out, "  decimals: %d\n", asset.Decimals)
	fmt.Fprintf(out, "  url:      %s\n", asset.URL)
	fmt.Fprintf(out, "  manager:  %s\n", asset.Manager)
	fmt.Fprintf(out, "  reserve:  %s\n", asset.Reserve)
	fmt.Fprintf(out, "  freeze:   %s\n", asset.Freeze)
	fmt.Fprintf(out, "  clawback: %s\n", asset.Clawback)
}
