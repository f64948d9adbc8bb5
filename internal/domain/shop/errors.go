package shop

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes failure semantics across the shop domain.
type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "invalid_argument"
	CodeNotFound        ErrorCode = "not_found"
	CodeEmptyCart       ErrorCode = "empty_cart"
	CodeConflict        ErrorCode = "conflict"
	CodeInternal        ErrorCode = "internal"
)

// Error is the canonical domain error wrapper. Expected outcomes
// (invalid_argument, not_found, empty_cart, conflict) are surfaced to the
// caller as-is; internal errors carry an opaque message with the cause
// retained for logging only.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a domain error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with domain error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var shopErr *Error
	if !errors.As(err, &shopErr) {
		return false
	}
	return shopErr.Code == code
}

// CodeOf extracts the domain error code when available.
func CodeOf(err error) ErrorCode {
	var shopErr *Error
	if !errors.As(err, &shopErr) {
		return ""
	}
	return shopErr.Code
}
