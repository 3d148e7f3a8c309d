package domain

import "math/big"

// ExecutionSuccess is the normalized record of an ExecutionSuccess event
// emitted by the multisig account contract once one of its transactions has
// been executed.
type ExecutionSuccess struct {
	TxID     string
	LogIndex uint
	// InnerTxHash is the multisig transaction hash of the executed
	// operation, ie. the digest the owners signed.
	InnerTxHash string
	// Payment is the gas refund paid by the contract, zero in our flows
	// since all refund fields are zeroed.
	Payment     *big.Int
	BlockHeight uint64
}

// ExecutionKey represents the ID of an ExecutionSuccess, composed by the
// hash of the tx that emitted the event and the position of the log within it.
type ExecutionKey struct {
	TxID     string
	LogIndex uint
}

func (e ExecutionSuccess) Key() ExecutionKey {
	return ExecutionKey{
		TxID:     e.TxID,
		LogIndex: e.LogIndex,
	}
}
