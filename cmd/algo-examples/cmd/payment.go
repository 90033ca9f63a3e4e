package cmd

import (
	"fmt"

	"github.com/algofoundry/asset-workflows-go/pkg/shared"
	"github.com/algofoundry/asset-workflows-go/pkg/workflow"
	"github.com/spf13/cobra"
)

func newFundCommand(root *rootOptions) *cobra.Command {
	var (
		receivers []string
		algos     string
	)

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Pay Algos from the creator to one or more accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			amount, err := shared.ParseAlgos(algos)
			if err != nil {
				return err
			}

			results, err := client.FundAccounts(cmd.Context(), receivers, amount)
			if err != nil {
				return err
			}
			for index, result := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "funded %s with %s Algos\n", receivers[index], shared.FormatMicroAlgos(amount))
				printConfirmation(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&receivers, "to", nil, "receiver addresses")
	flags.StringVar(&algos, "algos", "1", "Algos to send to each receiver")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newAtomicTransferCommand(root *rootOptions) *cobra.Command {
	var fundAlgos string

	cmd := &cobra.Command{
		Use:   "atomic-transfer",
		Short: "Fund accounts A, B and C, then send A→C and B→A as one atomic group",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client(cmd)
			if err != nil {
				return err
			}
			fundAmount, err := shared.ParseAlgos(fundAlgos)
			if err != nil {
				return err
			}

			report, err := client.RunAtomicTransferScenario(cmd.Context(), workflow.AtomicScenarioOptions{FundAmount: fundAmount})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "group %x confirmed in round %d\n", report.Transfer.GroupID[:], report.Transfer.Confirmation.ConfirmedRound)
			for index, balance := range report.Balances {
				fmt.Fprintf(out, "%c %s before=%s after=%s expected=%s\n",
					'A'+index,
					balance.Address,
					shared.FormatMicroAlgos(balance.Before),
					shared.FormatMicroAlgos(balance.After),
					shared.FormatMicroAlgos(balance.Expected),
				)
			}
			if !report.Matches() {
				return fmt.Errorf("balances after the atomic transfer do not match the expected balances")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fundAlgos, "fund-algos", "1", "Algos funded to each of A, B and C")
	return cmd
}
