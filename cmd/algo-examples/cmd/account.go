package cmd

import (
	"fmt"

	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/workflow"
	"github.com/spf13/cobra"
)

func newAccountCommand(root *rootOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the balance and assets of an account (default creator)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			if address == "" {
				creator, ok := client.Creator()
				if !ok {
					return workflow.ErrCreatorRequired
				}
				address = creator.Address.String()
			}

			state, err := client.AccountState(cmd.Context(), address)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "account %s at round %d\n", state.Address, state.Round)
			fmt.Fprintf(out, "  balance:     %s Algos\n", shared.FormatMicroAlgos(state.Balance))
			fmt.Fprintf(out, "  min balance: %s Algos\n", shared.FormatMicroAlgos(state.MinBalance))
			for _, asset := range state.CreatedAssets {
				printCreatedAsset(out, asset)
			}
			for _, holding := range state.HeldAssets {
				fmt.Fprintf(out, "holds %d of asset %d (frozen=%t)\n", holding.Amount, holding.AssetID, holding.IsFrozen)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "account address")
	return cmd
}
