package application

import "errors"

var (
	// ErrInvalidAsset is thrown when an asset identifier is not a valid
	// 20-byte hex address.
	ErrInvalidAsset = errors.New("asset identifier is not valid")
	// ErrEncodingMismatch is thrown when the locally encoded multisig
	// transaction differs from the encoding returned by the deployed
	// contract. Signatures produced over a mismatched digest would be
	// rejected at execution time, so the proposal is aborted upfront.
	ErrEncodingMismatch = errors.New(
		"local transaction encoding does not match the contract",
	)
)
