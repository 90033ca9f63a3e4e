package txn

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGroupInput is matched by every InvalidGroupInputError.
	ErrInvalidGroupInput = errors.New("invalid group input")
	// ErrInvalidTransaction is matched by every InvalidTransactionError.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

type TxnError struct {
	Message string
}

func (errorValue TxnError) Error() string {
	return errorValue.Message
}

type InvalidGroupInputError struct {
	TxnError
	Index int
}

func (errorValue InvalidGroupInputError) Is(target error) bool {
	return target == ErrInvalidGroupInput
}

func NewInvalidGroupInputError(index int, format string, args ...any) error {
	return InvalidGroupInputError{
		TxnError: TxnError{Message: fmt.Sprintf("invalid group input: "+format, args...)},
		Index:    index,
	}
}

type InvalidTransactionError struct {
	TxnError
	Kind  Kind
	Field string
}

func (errorValue InvalidTransactionError) Is(target error) bool {
	return target == ErrInvalidTransaction
}

func NewInvalidTransactionError(kind Kind, field string, reason string) error {
	return InvalidTransactionError{
		TxnError: TxnError{Message: fmt.Sprintf("invalid %s transaction: %s %s", kind, field, reason)},
		Kind:     kind,
		Field:    field,
	}
}
