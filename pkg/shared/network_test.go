package shared

import (
	"testing"
)

func TestNormalizeNetworkKnown(t *testing.T) {
	for _, network := range []string{NetworkMainnet, NetworkTestnet, NetworkBetanet, NetworkLocalnet} {
		result, err := NormalizeNetwork(network)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", network, err)
		}
		if result != network {
			t.Fatalf("expected %q, got %q", network, result)
		}
	}
}

func TestNormalizeNetworkCaseInsensitive(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"MAINNET", NetworkMainnet},
		{"Testnet", NetworkTestnet},
		{"  betanet  ", NetworkBetanet},
		{"Sandbox", NetworkLocalnet},
	}

	for _, tc := range cases {
		result, err := NormalizeNetwork(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for input %q, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNormalizeNetworkEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		result, err := NormalizeNetwork(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != NetworkTestnet {
			t.Fatalf("expected %q for %q, got %q", NetworkTestnet, input, result)
		}
	}
}

func TestNormalizeNetworkUnsupported(t *testing.T) {
	_, err := NormalizeNetwork("devnet")
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestDefaultAlgodAddress(t *testing.T) {
	address, err := DefaultAlgodAddress("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "https://testnet-api.algonode.cloud" {
		t.Fatalf("unexpected testnet address %q", address)
	}

	address, err = DefaultAlgodAddress("localnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "http://localhost:4001" {
		t.Fatalf("unexpected localnet address %q", address)
	}

	if _, err := DefaultAlgodAddress("badnet"); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestResolveAlgodAddress(t *testing.T) {
	cases := []struct {
		server   string
		port     string
		expected string
	}{
		{"http://localhost", "4001", "http://localhost:4001"},
		{"http://localhost/", ":4001", "http://localhost:4001"},
		{"https://testnet-api.algonode.cloud", "", "https://testnet-api.algonode.cloud"},
		{"", "4001", ""},
	}

	for _, tc := range cases {
		result := ResolveAlgodAddress(tc.server, tc.port)
		if result != tc.expected {
			t.Fatalf("expected %q for (%q, %q), got %q", tc.expected, tc.server, tc.port, result)
		}
	}
}
