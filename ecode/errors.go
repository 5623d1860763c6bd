package ecode

import (
	"errors"
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "required"
	invalidMsg  = "invalid"
	failedMsg   = "failed"
)

// FieldIsEmpty returns field empty message
func FieldIsEmpty(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], emptyMsg)
	}
	return emptyMsg
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// Failed returns failed message
func Failed(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], failedMsg)
	}
	return failedMsg
}

// Sentinel errors, one per error class.
var (
	ErrInvalidArgument = errors.New(Text(InvalidArgumentCode))
	ErrParse           = errors.New(Text(ParseCode))
	ErrTransport       = errors.New(Text(TransportCode))
	ErrCircuitOpen     = errors.New(Text(CircuitOpenCode))
)

// Error is a coded error carrying an optional cause.
type Error struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", Text(e.Code), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", Text(e.Code), e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's class.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Code)
}

func sentinel(code int) error {
	switch code {
	case InvalidArgumentCode:
		return ErrInvalidArgument
	case ParseCode:
		return ErrParse
	case TransportCode:
		return ErrTransport
	case CircuitOpenCode:
		return ErrCircuitOpen
	}
	return nil
}

// New creates a coded error.
func New(code int, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// InvalidArgument returns an invalid argument error
func InvalidArgument(msg string) *Error {
	return New(InvalidArgumentCode, msg, nil)
}

// Parse returns a parse error wrapping the cause
func Parse(msg string, err error) *Error {
	return New(ParseCode, msg, err)
}

// Transport returns a transport error wrapping the cause
func Transport(msg string, err error) *Error {
	return New(TransportCode, msg, err)
}

// CircuitOpen returns a circuit open error wrapping the cause
func CircuitOpen(msg string, err error) *Error {
	return New(CircuitOpenCode, msg, err)
}

// CodeOf returns the code of the first *Error in err's chain, or ServerErr.
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ServerErr
}
