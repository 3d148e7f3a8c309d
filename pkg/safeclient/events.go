package safeclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
)

// ExecutionSuccessEvent is an ExecutionSuccess log emitted by the multisig
// account, normalized. Confirmations are computed against the chain height
// sampled when the query was made, so they are eventually consistent, not
// exact.
type ExecutionSuccessEvent struct {
	TxHash      common.Hash
	LogIndex    uint
	BlockHeight uint64
	// InnerTxHash is the multisig transaction hash of the executed
	// operation, ie. the digest the owners signed.
	InnerTxHash common.Hash
	// Payment is the gas refund paid by the contract, always zero in the
	// bridge's flows.
	Payment       *big.Int
	Confirmations uint64
}

// ExecutionSuccesses returns the ExecutionSuccess events emitted by the
// multisig account since the given height (genesis when nil). Malformed logs
// are skipped and logged.
func (c *Client) ExecutionSuccesses(
	ctx context.Context, since *uint64,
) ([]ExecutionSuccessEvent, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics: [][]common.Hash{
			{safeABI.Events["ExecutionSuccess"].ID},
		},
	}
	if since != nil {
		query.FromBlock = new(big.Int).SetUint64(*since)
	}

	logs, err := c.svc.FilterLogs(ctx, query)
	if err != nil {
		return nil, err
	}

	height, err := c.svc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]ExecutionSuccessEvent, 0, len(logs))
	for _, l := range logs {
		event, err := c.parseExecutionSuccess(l)
		if err != nil {
			log.WithError(err).Warnf(
				"skipping malformed execution log %s:%d", l.TxHash, l.Index,
			)
			continue
		}
		if height >= event.BlockHeight {
			event.Confirmations = height - event.BlockHeight
		}
		events = append(events, *event)
	}
	return events, nil
}

func (c *Client) parseExecutionSuccess(
	l types.Log,
) (*ExecutionSuccessEvent, error) {
	out, err := safeABI.Events["ExecutionSuccess"].Inputs.Unpack(l.Data)
	if err != nil {
		return nil, err
	}
	innerTxHash := out[0].([32]byte)
	payment := out[1].(*big.Int)

	return &ExecutionSuccessEvent{
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
		BlockHeight: l.BlockNumber,
		InnerTxHash: common.Hash(innerTxHash),
		Payment:     payment,
	}, nil
}
