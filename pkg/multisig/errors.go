package multisig

import "errors"

var (
	// ErrInsufficientSignatures is thrown when aggregating fewer distinct
	// signers than the configured threshold.
	ErrInsufficientSignatures = errors.New(
		"not enough signatures to meet the threshold",
	)
	// ErrDuplicateSigner is thrown when the same owner identity appears
	// more than once in the signatures to aggregate.
	ErrDuplicateSigner = errors.New("duplicate signer")
	// ErrUnsupportedOperation is thrown when encoding anything but a plain
	// call. Delegate-calls are never used by the bridge.
	ErrUnsupportedOperation = errors.New("only call operations are supported")
	// ErrInvalidSignatureLength ...
	ErrInvalidSignatureLength = errors.New("signature must be 65 bytes")
	// ErrInvalidThreshold ...
	ErrInvalidThreshold = errors.New("threshold must be a positive number")
)
