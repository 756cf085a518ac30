// Package walleterr defines the tagged-variant error kinds returned by
// validation and lookups across the wallet synchronization engine. Errors
// are values, never panics, except where a caller has violated a documented
// invariant (see the package doc comment on each offending function).
package walleterr

import "fmt"

// ErrorCode identifies a class of error that the wallet core can return.
type ErrorCode int

const (
	// ErrAddressNotValid indicates a supplied address failed to decode.
	ErrAddressNotValid ErrorCode = iota

	// ErrAddressIsIntegrated indicates an integrated address was given
	// where a plain address was required.
	ErrAddressIsIntegrated

	// ErrAddressNotInWallet indicates the address does not belong to
	// any subwallet owned by this wallet.
	ErrAddressNotInWallet

	// ErrNoDestinationsGiven indicates a send was requested with zero
	// destinations.
	ErrNoDestinationsGiven

	// ErrAmountIsZero indicates a destination amount of zero.
	ErrAmountIsZero

	// ErrNegativeValueGiven indicates a negative amount, mixin, or fee.
	ErrNegativeValueGiven

	// ErrNonIntegerGiven indicates a value expected to be an integer
	// (atomic units, mixin count) was not.
	ErrNonIntegerGiven

	// ErrConflictingPaymentIds indicates two or more distinct payment
	// IDs were given across destinations/integrated addresses.
	ErrConflictingPaymentIds

	// ErrFeeTooSmall indicates a fee below the network minimum.
	ErrFeeTooSmall

	// ErrNotEnoughBalance indicates insufficient unlocked balance.
	ErrNotEnoughBalance

	// ErrWillOverflow indicates a total amount that would overflow the
	// atomic-unit accumulator.
	ErrWillOverflow

	// ErrMixinTooSmall indicates a mixin below the height-indexed band.
	ErrMixinTooSmall

	// ErrMixinTooBig indicates a mixin above the height-indexed band.
	ErrMixinTooBig

	// ErrPaymentIdWrongLength indicates a payment ID that isn't exactly
	// 64 hex characters.
	ErrPaymentIdWrongLength

	// ErrPaymentIdInvalid indicates a payment ID that isn't valid hex.
	ErrPaymentIdInvalid

	// ErrInvalidMnemonic indicates a mnemonic seed failed checksum or
	// word-list validation.
	ErrInvalidMnemonic

	// ErrInvalidKey indicates a raw key failed to parse or is not a
	// valid curve point/scalar.
	ErrInvalidKey

	// ErrDaemonOffline indicates a daemon RPC call could not reach its
	// target.
	ErrDaemonOffline

	// ErrBlockNotFound indicates a requested block height or hash is
	// unknown to the daemon.
	ErrBlockNotFound

	// ErrTransactionNotFound indicates a requested transaction hash is
	// not known to this wallet.
	ErrTransactionNotFound
)

var codeStrings = map[ErrorCode]string{
	ErrAddressNotValid:      "address is not a valid address",
	ErrAddressIsIntegrated:  "address is an integrated address, expected a plain address",
	ErrAddressNotInWallet:   "address does not belong to a subwallet in this wallet",
	ErrNoDestinationsGiven:  "no destinations given",
	ErrAmountIsZero:         "amount given is zero",
	ErrNegativeValueGiven:   "negative value given",
	ErrNonIntegerGiven:      "non integer value given",
	ErrConflictingPaymentIds: "conflicting payment IDs given",
	ErrFeeTooSmall:          "fee given is too small",
	ErrNotEnoughBalance:     "not enough unlocked balance",
	ErrWillOverflow:         "amount will overflow",
	ErrMixinTooSmall:        "mixin given is too small",
	ErrMixinTooBig:          "mixin given is too big",
	ErrPaymentIdWrongLength: "payment ID is the wrong length",
	ErrPaymentIdInvalid:     "payment ID is not valid hex",
	ErrInvalidMnemonic:      "mnemonic seed is invalid",
	ErrInvalidKey:           "key is invalid",
	ErrDaemonOffline:        "daemon is offline or unreachable",
	ErrBlockNotFound:        "block not found",
	ErrTransactionNotFound:  "transaction not found in this wallet",
}

// String returns the human readable description of the error code.
func (e ErrorCode) String() string {
	if s, ok := codeStrings[e]; ok {
		return s
	}
	return "unknown error code"
}

// Error represents a tagged wallet error: a stable Code plus an optional
// wrapped cause and contextual description. It is the concrete type
// returned by every validation path named in spec section 7.
type Error struct {
	Code        ErrorCode
	Description string
	Err         error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code.String()
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error with the code's default description.
func New(code ErrorCode) *Error {
	return &Error{Code: code, Description: code.String()}
}

// Wrap builds an *Error that carries an underlying cause, such as a
// transport failure behind ErrDaemonOffline.
func Wrap(code ErrorCode, err error) *Error {
	return &Error{Code: code, Description: code.String(), Err: err}
}

// Is reports whether err is a *Error with the given code, mirroring the
// IsError(err, code) idiom used throughout this codebase.
func Is(err error, code ErrorCode) bool {
	werr, ok := err.(*Error)
	if !ok {
		return false
	}
	return werr.Code == code
}
