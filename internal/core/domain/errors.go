package domain

import "errors"

var (
	// ErrInvalidTxID is thrown when a record is created without the hash of
	// the tx that emitted its event.
	ErrInvalidTxID = errors.New("txid must not be empty")
	// ErrInvalidAccount is thrown when a record is created with an account
	// identifier of the wrong length.
	ErrInvalidAccount = errors.New("account identifier is not valid")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must not be nil")
)
