package ledgerclient

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TransportError wraps any RPC or network failure returned by the remote
// endpoint. Callers may retry, the client itself never does.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ledger transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfirmationTimeoutError is returned when a submitted transaction is not
// observed in a block within the confirmation timeout. The outcome is
// ambiguous: the transaction may be pending or already included. Callers must
// reconcile through the event logs before retrying to avoid a double
// submission.
type ConfirmationTimeoutError struct {
	TxHash common.Hash
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf(
		"confirmation timeout: tx %s may be pending or included", e.TxHash,
	)
}

// ContractRevertError is returned when the remote contract rejected the call,
// either at simulation time or once included. Fatal for the attempt, never
// retried automatically.
type ContractRevertError struct {
	TxHash common.Hash
	Reason string
}

func (e *ContractRevertError) Error() string {
	if e.Reason == "" {
		return "contract reverted"
	}
	return fmt.Sprintf("contract reverted: %s", e.Reason)
}
