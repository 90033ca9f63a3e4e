package shared

import (
	"fmt"
	"strings"
)

const (
	NetworkMainnet  = "mainnet"
	NetworkTestnet  = "testnet"
	NetworkBetanet  = "betanet"
	NetworkLocalnet = "localnet"
)

// LocalnetToken is the algod API token of a default local sandbox node.
const LocalnetToken = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

var defaultAlgodAddresses = map[string]string{
	NetworkMainnet:  "https://mainnet-api.algonode.cloud",
	NetworkTestnet:  "https://testnet-api.algonode.cloud",
	NetworkBetanet:  "https://betanet-api.algonode.cloud",
	NetworkLocalnet: "http://localhost:4001",
}

// NormalizeNetwork lowercases and validates a network name. Empty input
// selects testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet, NetworkBetanet, NetworkLocalnet:
		return normalized, nil
	case "sandbox", "devnet-local":
		return NetworkLocalnet, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// DefaultAlgodAddress returns the public algod endpoint for network.
func DefaultAlgodAddress(network string) (string, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return "", err
	}
	return defaultAlgodAddresses[normalized], nil
}

// ResolveAlgodAddress joins a server URL and an optional port.
func ResolveAlgodAddress(server string, port string) string {
	address := strings.TrimRight(strings.TrimSpace(server), "/")
	port = strings.TrimPrefix(strings.TrimSpace(port), ":")
	if address == "" || port == "" {
		return address
	}
	return address + ":" + port
}
