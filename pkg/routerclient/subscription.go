package routerclient

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
)

// SubscribeDeposits streams newly observed Deposit events. The event channel
// is closed when the context is cancelled or when the underlying subscription
// fails fatally; in the latter case the cause is delivered on the error
// channel. The subscription is torn down in both cases, nothing leaks.
// Requires an endpoint with subscription support.
func (c *Client) SubscribeDeposits(
	ctx context.Context,
) (<-chan DepositEvent, <-chan error, error) {
	logsChan := make(chan types.Log)
	sub, err := c.svc.SubscribeFilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics: [][]common.Hash{
			{routerABI.Events["Deposit"].ID},
		},
	}, logsChan)
	if err != nil {
		return nil, nil, err
	}

	eventChan := make(chan DepositEvent)
	errChan := make(chan error, 1)

	go func() {
		defer close(eventChan)
		defer sub.Unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					errChan <- err
				}
				return
			case l := <-logsChan:
				event, err := parseDeposit(l)
				if err != nil {
					log.WithError(err).Warnf(
						"skipping malformed deposit log %s:%d",
						l.TxHash, l.Index,
					)
					continue
				}
				// best effort, a failed height fetch leaves the
				// event with zero confirmations.
				if height, err := c.svc.BlockNumber(ctx); err == nil &&
					height >= event.BlockHeight {
					event.Confirmations = height - event.BlockHeight
				}

				select {
				case eventChan <- *event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return eventChan, errChan, nil
}
