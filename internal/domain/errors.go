package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Request errors
	ErrMissingParam     = errors.New("missing param")
	ErrPasswordMismatch = errors.New("does not match password")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrPasswordTooWeak   = errors.New("password does not meet requirements")
	ErrInvalidCredential = errors.New("invalid username or password")

	// Transaction errors
	ErrSameAccount        = errors.New("recipient must differ from sender")
	ErrInvalidAmount      = errors.New("must be positive")
	ErrAmountPrecision    = errors.New("must have at most two decimal places")
	ErrInvalidDate        = errors.New("invalid date format")
	ErrInvalidType        = errors.New("type must be cash-in or cash-out")
	ErrLedgerInconsistent = errors.New("ledger is inconsistent")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrUnauthorized)
)

// InvalidParamError reports a client-correctable input problem on a
// single request parameter.
type InvalidParamError struct {
	Param  string
	Reason string
	Err    error
}

// NewInvalidParamError builds an InvalidParamError whose reason is the
// text of cause.
func NewInvalidParamError(param string, cause error) *InvalidParamError {
	return &InvalidParamError{Param: param, Reason: cause.Error(), Err: cause}
}

func (e *InvalidParamError) Error() string {
	if e.Reason == "" {
		return "invalid param: " + e.Param
	}

	return fmt.Sprintf("invalid param: %s: %s", e.Param, e.Reason)
}

func (e *InvalidParamError) Unwrap() error {
	return e.Err
}

// ServerError wraps an unexpected fault of a store or collaborator.
type ServerError struct {
	Op  string
	Err error
}

// NewServerError wraps err as a ServerError raised by op.
func NewServerError(op string, err error) *ServerError {
	return &ServerError{Op: op, Err: err}
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s: %v", e.Op, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// IsInvalidParam reports whether err carries an InvalidParamError and
// returns it.
func IsInvalidParam(err error) (*InvalidParamError, bool) {
	var target *InvalidParamError
	if errors.As(err, &target) {
		return target, true
	}

	return nil, false
}

// IsServerError reports whether err is, or wraps, a ServerError.
func IsServerError(err error) bool {
	var target *ServerError
	return errors.As(err, &target)
}
