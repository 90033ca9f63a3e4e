// Package shared provides helpers used across the workflow packages and the
// command line entry points: network normalization, algod endpoint defaults,
// operator configuration loaded from the environment or a .env file,
// mnemonic parsing, logger construction and amount formatting.
//
// # Environment Variables
//
//	ALGORAND_NETWORK   mainnet, testnet, betanet or localnet (default testnet)
//	ALGOD_SERVER       algod base URL, defaults to the public node for the network
//	ALGOD_PORT         optional port appended to ALGOD_SERVER
//	ALGOD_TOKEN        algod API token
//	MNEMONIC_CREATOR   25-word mnemonic of the funding and creator account
//	ALGOD_WAIT_ROUNDS  rounds to wait for confirmation (default 4)
//	LOG_ENV            production for JSON logs, none to disable logging
//
// Network scoped variants such as TESTNET_MNEMONIC_CREATOR take precedence
// over the unscoped key for that network.
package shared
