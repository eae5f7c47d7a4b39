package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/units"
)

// EvalErrorCode categorizes evaluation errors.
type EvalErrorCode string

const (
	// ErrCodeUnknownOperation indicates the operation name is not registered.
	ErrCodeUnknownOperation EvalErrorCode = "UNKNOWN_OPERATION"

	// ErrCodeInvalidArgument indicates a missing, mistyped or out-of-domain argument.
	ErrCodeInvalidArgument EvalErrorCode = "INVALID_ARGUMENT"

	// ErrCodeUnrecognizedUnitKind indicates a unit tag other than mass, length or time.
	ErrCodeUnrecognizedUnitKind EvalErrorCode = "UNRECOGNIZED_UNIT_KIND"
)

// EvalError is an error detected while evaluating one operation.
type EvalError struct {
	Code      EvalErrorCode
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s (operation=%s)", e.Code, e.Message, e.Operation)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// Case returns the outcome case an evaluation error is recorded under.
func (e *EvalError) Case() string {
	switch e.Code {
	case ErrCodeUnrecognizedUnitKind:
		return ir.CaseUnrecognizedUnitKind
	default:
		return ir.CaseInvalidArgument
	}
}

// IsUnknownOperation reports whether err is an unknown-operation error.
func IsUnknownOperation(err error) bool {
	var ee *EvalError
	return errors.As(err, &ee) && ee.Code == ErrCodeUnknownOperation
}

func unknownOperation(name string) *EvalError {
	return &EvalError{
		Code:      ErrCodeUnknownOperation,
		Operation: name,
		Message:   "no such operation",
	}
}

func invalidArgument(op, format string, args ...any) *EvalError {
	return &EvalError{
		Code:      ErrCodeInvalidArgument,
		Operation: op,
		Message:   fmt.Sprintf(format, args...),
	}
}

// classify maps a domain error from the formula packages onto an EvalError.
func classify(op string, err error) *EvalError {
	var ee *EvalError
	if errors.As(err, &ee) {
		if ee.Operation == "" {
			ee.Operation = op
		}
		return ee
	}
	if errors.Is(err, units.ErrUnrecognizedUnitKind) {
		return &EvalError{Code: ErrCodeUnrecognizedUnitKind, Operation: op, Message: err.Error(), Err: err}
	}
	return &EvalError{Code: ErrCodeInvalidArgument, Operation: op, Message: err.Error(), Err: err}
}
