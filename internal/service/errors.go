package service

import (
	"errors"
	"fmt"
)

// Code classifies a service error. The HTTP layer maps each code to a status.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidArgument
	CodeNotFound
	CodeConflict
	CodeUnauthenticated
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeNotFound:
		return "not_found"
	case CodeConflict:
		return "conflict"
	case CodeUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is an error with a Code. Its message is safe to show to clients
// for every code except CodeInternal.
type Error struct {
	code Code
	err  error
}

// NewError wraps err with code.
func NewError(code Code, err error) *Error {
	return &Error{code: code, err: err}
}

// Errorf is NewError with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return NewError(code, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's code.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the client-facing message.
func (e *Error) Message() string {
	return e.err.Error()
}

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal if there is none.
func CodeOf(err error) Code {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.code
	}
	return CodeInternal
}
