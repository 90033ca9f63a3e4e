// Asset workflows for Go create Algorand Standard Assets and NFTs, change
// their control addresses, opt accounts in, move asset units and submit
// atomically grouped payments, waiting round by round for confirmation.
//
// # Packages
//
//   - pkg/txn: transaction builders, the group coordinator and signing
//   - pkg/ledger: the ledger interface, the algod client and the
//     submission and confirmation loop
//   - pkg/ledger/ledgertest: an in-memory ledger for tests
//   - pkg/workflow: end to end flows over a ledger and a creator account
//   - pkg/shared: network defaults, operator configuration, logging and
//     amount formatting
//
// # Commands
//
// cmd/algo-examples wraps every workflow in a subcommand. The programs under
// examples/ run single flows with configuration read from the environment.
//
// # Installation
//
//	go get github.com/algofoundry/asset-workflows-go@latest
package asset_workflows_go
