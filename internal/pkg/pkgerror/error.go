package pkgerror

import (
	"errors"
	"net/http"
)

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeUnauthorized
	CodeUnavailable
)

type kind int

const (
	kindBusiness kind = iota + 1
	kindServer
)

// Error carries a message safe to show to clients next to the cause that produced it.
type Error struct {
	msg  string
	code Code
	kind kind
	err  error
}

func NewBusiness(msg string, code Code) *Error {
	return &Error{msg: msg, code: code, kind: kindBusiness}
}

func NewServer(err error) *Error {
	return &Error{msg: "internal server error", code: CodeInternal, kind: kindServer, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) IsBusiness() bool {
	return e.kind == kindBusiness
}

func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// From returns err as *Error, wrapping unknown errors as server errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewServer(err)
}
