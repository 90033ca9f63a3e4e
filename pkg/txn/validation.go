package txn

import (
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// ValidateAddress checks that value is a well-formed Algorand address.
func ValidateAddress(kind Kind, field string, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return NewInvalidTransactionError(kind, field, "is required")
	}
	if _, err := types.DecodeAddress(trimmed); err != nil {
		return NewInvalidTransactionError(kind, field, "is not a valid address")
	}
	return nil
}

func validateOptionalAddress(kind Kind, field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return ValidateAddress(kind, field, value)
}

func validateNote(kind Kind, note []byte) error {
	if len(note) > MaxNoteLength {
		return NewInvalidTransactionError(kind, "note", "exceeds 1024 bytes")
	}
	return nil
}

func validateAssetID(kind Kind, assetID uint64) error {
	if assetID == 0 {
		return NewInvalidTransactionError(kind, "asset ID", "is required")
	}
	return nil
}

func validateAssetCreate(params AssetCreateTxParams) error {
	kind := KindAssetCreate
	if err := ValidateAddress(kind, "creator", params.Creator); err != nil {
		return err
	}
	if params.Total == 0 {
		return NewInvalidTransactionError(kind, "total", "must be positive")
	}
	if params.Decimals > MaxAssetDecimals {
		return NewInvalidTransactionError(kind, "decimals", "must be <= 19")
	}
	if len(params.UnitName) > MaxUnitNameLength {
		return NewInvalidTransactionError(kind, "unit name", "must be <= 8 bytes")
	}
	if len(params.AssetName) > MaxAssetNameLength {
		return NewInvalidTransactionError(kind, "asset name", "must be <= 32 bytes")
	}
	if len(params.URL) > MaxAssetURLLength {
		return NewInvalidTransactionError(kind, "url", "must be <= 96 bytes")
	}
	if len(params.MetadataHash) != 0 && len(params.MetadataHash) != MetadataHashLength {
		return NewInvalidTransactionError(kind, "metadata hash", "must be exactly 32 bytes")
	}

	roles := []struct {
		field string
		value string
	}{
		{"manager", params.Manager},
		{"reserve", params.Reserve},
		{"freeze", params.Freeze},
		{"clawback", params.Clawback},
	}
	for _, role := range roles {
		if err := validateOptionalAddress(kind, role.field, role.value); err != nil {
			return err
		}
	}

	return validateNote(kind, params.Note)
}

func validateAssetConfig(params AssetConfigTxParams) error {
	kind := KindAssetConfig
	if err := ValidateAddress(kind, "manager", params.Manager); err != nil {
		return err
	}
	if err := validateAssetID(kind, params.AssetID); err != nil {
		return err
	}

	roles := []struct {
		field string
		value string
	}{
		{"new manager", params.NewManager},
		{"new reserve", params.NewReserve},
		{"new freeze", params.NewFreeze},
		{"new clawback", params.NewClawback},
	}
	for _, role := range roles {
		if strings.TrimSpace(role.value) == "" {
			if !params.AllowEmptyAddresses {
				return NewInvalidTransactionError(kind, role.field, "is empty and clearing roles is not allowed")
			}
			continue
		}
		if err := ValidateAddress(kind, role.field, role.value); err != nil {
			return err
		}
	}

	return validateNote(kind, params.Note)
}
