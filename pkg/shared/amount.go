package shared

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MicroAlgosPerAlgo = 1_000_000
	algoDecimals      = 6
)

// FormatMicroAlgos renders a microAlgo amount in Algos, e.g. 1500000 as
// "1.500000".
func FormatMicroAlgos(amount uint64) string {
	return FormatAssetAmount(amount, algoDecimals)
}

// FormatAssetAmount renders base units of an asset with the given number of
// decimals.
func FormatAssetAmount(amount uint64, decimals uint32) string {
	value := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
	return value.StringFixed(int32(decimals))
}

// ParseAlgos converts an Algo amount such as "0.1" to microAlgos.
func ParseAlgos(raw string) (uint64, error) {
	return ParseAssetAmount(raw, algoDecimals)
}

// ParseAssetAmount converts a decimal amount to base units. Amounts with more
// fractional digits than decimals are rejected.
func ParseAssetAmount(raw string, decimals uint32) (uint64, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}

	value, err := decimal.NewFromString(candidate)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", raw)
	}

	units := value.Shift(int32(decimals))
	if !units.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", raw, decimals)
	}
	whole := units.BigInt()
	if !whole.IsUint64() {
		return 0, fmt.Errorf("amount %q is out of range", raw)
	}
	return whole.Uint64(), nil
}
