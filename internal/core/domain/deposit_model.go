package domain

import "math/big"

// Deposit is the normalized record of a Deposit event emitted by the Router
// contract. The amount is the one emitted on-chain, which for fee-on-transfer
// assets can be lower than the amount the depositor requested.
type Deposit struct {
	// TxID is the 0x-prefixed hash of the ledger transaction that emitted
	// the event.
	TxID string
	// LogIndex is the position of the log within its block.
	LogIndex uint
	// Account is the 0x-prefixed 32-byte destination account identifier.
	Account string
	// Asset is the 0x-prefixed 20-byte asset identifier. The zero address
	// identifies the ledger's native asset.
	Asset       string
	Amount      *big.Int
	BlockHeight uint64
}

// DepositKey represents the ID of a Deposit, composed by the hash of the tx
// that emitted the event and the position of the log within it.
type DepositKey struct {
	TxID     string
	LogIndex uint
}

func (d Deposit) Key() DepositKey {
	return DepositKey{
		TxID:     d.TxID,
		LogIndex: d.LogIndex,
	}
}
