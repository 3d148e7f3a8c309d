package crawler

import (
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/tidelabs/tideth/pkg/safeclient"
)

const (
	QuitSignal EventType = iota
	RouterDeposit
	RouterWithdrawal
	SafeExecution
)

type EventType int

func (et EventType) String() string {
	switch et {
	case QuitSignal:
		return "QuitSignal"
	case RouterDeposit:
		return "RouterDeposit"
	case RouterWithdrawal:
		return "RouterWithdrawal"
	case SafeExecution:
		return "SafeExecution"
	default:
		return "Unknown"
	}
}

type QuitEvent struct{}

func (q QuitEvent) Type() EventType {
	return QuitSignal
}

// DepositsEvent carries the Deposit occurrences observed by one poll.
type DepositsEvent struct {
	Deposits []routerclient.DepositEvent
}

func (d DepositsEvent) Type() EventType {
	return RouterDeposit
}

// WithdrawalsEvent carries the Withdraw occurrences observed by one poll.
type WithdrawalsEvent struct {
	Withdrawals []routerclient.WithdrawEvent
}

func (w WithdrawalsEvent) Type() EventType {
	return RouterWithdrawal
}

// ExecutionsEvent carries the ExecutionSuccess occurrences observed by one
// poll.
type ExecutionsEvent struct {
	Executions []safeclient.ExecutionSuccessEvent
}

func (e ExecutionsEvent) Type() EventType {
	return SafeExecution
}
