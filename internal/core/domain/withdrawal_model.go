package domain

import "math/big"

// Withdrawal is the normalized record of a Withdraw event emitted by the
// Router contract. Unlike deposits, the destination account is a native
// 20-byte ledger address.
type Withdrawal struct {
	TxID        string
	LogIndex    uint
	Account     string
	Asset       string
	Amount      *big.Int
	BlockHeight uint64
}

// WithdrawalKey represents the ID of a Withdrawal, composed by the hash of
// the tx that emitted the event and the position of the log within it.
type WithdrawalKey struct {
	TxID     string
	LogIndex uint
}

func (w Withdrawal) Key() WithdrawalKey {
	return WithdrawalKey{
		TxID:     w.TxID,
		LogIndex: w.LogIndex,
	}
}
