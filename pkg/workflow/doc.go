// Package workflow runs the asset and payment flows end to end: it fetches
// network parameters, builds and signs transactions, submits them through a
// ledger.Submitter and reads back the resulting account state.
//
// A Client is bound to one ledger and, optionally, a creator account that
// funds other accounts and creates assets:
//
//	client, err := workflow.NewClient(workflow.ClientConfig{
//		Network:         "testnet",
//		CreatorMnemonic: os.Getenv("MNEMONIC_CREATOR"),
//	})
//	created, err := client.CreateNFT(ctx, workflow.CreateNFTOptions{
//		UnitName:  "AFNFT",
//		AssetName: "Algo Foundry NFT",
//		URL:       "https://path/to/my/nft/asset/metadata.json",
//	})
//
// Operations never resubmit after a timeout. Each call fetches fresh network
// parameters, so retrying a failed operation builds a new transaction.
package workflow
