package shared

import (
	"math"
	"testing"
)

func TestFormatMicroAlgos(t *testing.T) {
	cases := []struct {
		amount   uint64
		expected string
	}{
		{0, "0.000000"},
		{1000, "0.001000"},
		{1000000, "1.000000"},
		{1099000, "1.099000"},
		{math.MaxUint64, "18446744073709.551615"},
	}

	for _, tc := range cases {
		result := FormatMicroAlgos(tc.amount)
		if result != tc.expected {
			t.Fatalf("expected %q for %d, got %q", tc.expected, tc.amount, result)
		}
	}
}

func TestFormatAssetAmount(t *testing.T) {
	if result := FormatAssetAmount(1000, 2); result != "10.00" {
		t.Fatalf("expected 10.00, got %q", result)
	}
	if result := FormatAssetAmount(1, 0); result != "1" {
		t.Fatalf("expected 1, got %q", result)
	}
}

func TestParseAlgos(t *testing.T) {
	cases := []struct {
		input    string
		expected uint64
	}{
		{"1", 1000000},
		{"0.1", 100000},
		{" 2.000001 ", 2000001},
		{"0", 0},
	}

	for _, tc := range cases {
		result, err := ParseAlgos(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %d for %q, got %d", tc.expected, tc.input, result)
		}
	}
}

func TestParseAlgosInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "-1", "0.0000001", "18446744073710"} {
		if _, err := ParseAlgos(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestParseAssetAmount(t *testing.T) {
	result, err := ParseAssetAmount("10.5", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 1050 {
		t.Fatalf("expected 1050, got %d", result)
	}

	if _, err := ParseAssetAmount("1.5", 0); err == nil {
		t.Fatal("expected error for fractional NFT amount")
	}
}
