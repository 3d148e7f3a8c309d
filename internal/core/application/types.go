package application

import "github.com/tidelabs/tideth/internal/core/domain"

// DepositInfo is a stored deposit record enriched with its confirmation
// depth, recomputed against the chain height at the time of the request.
type DepositInfo struct {
	domain.Deposit
	Confirmations uint64
}

// WithdrawalInfo is a stored withdrawal record enriched with its confirmation
// depth, recomputed against the chain height at the time of the request.
type WithdrawalInfo struct {
	domain.Withdrawal
	Confirmations uint64
}

// ExecutionInfo is a stored multisig execution record enriched with its
// confirmation depth, recomputed against the chain height at the time of the
// request.
type ExecutionInfo struct {
	domain.ExecutionSuccess
	Confirmations uint64
}
