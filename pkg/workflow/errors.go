package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrCreatorRequired = errors.New("creator account is required")
	ErrAssetNotFound   = errors.New("asset not found")
)

type WorkflowError struct {
	Message string
}

func (errorValue WorkflowError) Error() string {
	return errorValue.Message
}

// AssetNotFoundError reports an asset that an account neither created nor
// holds, depending on the lookup.
type AssetNotFoundError struct {
	WorkflowError
	Address string
	AssetID uint64
}

func (errorValue AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

func newAssetNotFoundError(address string, assetID uint64, relation string) error {
	return AssetNotFoundError{
		WorkflowError: WorkflowError{Message: fmt.Sprintf("account %s has no %s asset %d", address, relation, assetID)},
		Address:       address,
		AssetID:       assetID,
	}
}

// StepError identifies the workflow step that failed. It wraps the step's
// error so errors.Is still matches ledger and transaction errors.
type StepError struct {
	WorkflowError
	Step  string
	Cause error
}

func (errorValue StepError) Unwrap() error {
	return errorValue.Cause
}

func newStepError(step string, cause error) error {
	return StepError{
		WorkflowError: WorkflowError{Message: fmt.Sprintf("%s failed: %v", step, cause)},
		Step:          step,
		Cause:         cause,
	}
}
