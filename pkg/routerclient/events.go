package routerclient

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
)

// ErrMalformedLog is thrown when a log matching an event signature cannot be
// decoded. Queries skip and log the offending record instead of failing.
var ErrMalformedLog = errors.New("malformed event log")

// DepositEvent is a Deposit log emitted by the Router, normalized. The
// account is the 32-byte destination identifier, which supports non-native
// account encodings. Confirmations are computed against the chain height
// sampled when the query was made, so they are eventually consistent, not
// exact.
type DepositEvent struct {
	Amount        *big.Int
	Asset         common.Address
	Account       [32]byte
	TxHash        common.Hash
	LogIndex      uint
	BlockHeight   uint64
	Confirmations uint64
}

// WithdrawEvent is a Withdraw log emitted by the Router, normalized. The
// destination account is a native 20-byte address.
type WithdrawEvent struct {
	Amount        *big.Int
	Asset         common.Address
	Account       common.Address
	TxHash        common.Hash
	LogIndex      uint
	BlockHeight   uint64
	Confirmations uint64
}

// GetAllDeposits returns the Deposit events emitted since the given height
// (genesis when nil).
func (c *Client) GetAllDeposits(
	ctx context.Context, since *uint64,
) ([]DepositEvent, error) {
	return c.queryDeposits(ctx, since, nil, nil)
}

// GetDepositsByAccount returns the Deposit events whose 32-byte destination
// account matches the given one exactly.
func (c *Client) GetDepositsByAccount(
	ctx context.Context, account [32]byte, since *uint64,
) ([]DepositEvent, error) {
	topic := common.Hash(account)
	return c.queryDeposits(ctx, since, &topic, nil)
}

// GetDepositsByAsset returns the Deposit events of the given asset.
func (c *Client) GetDepositsByAsset(
	ctx context.Context, asset common.Address, since *uint64,
) ([]DepositEvent, error) {
	topic := addressTopic(asset)
	return c.queryDeposits(ctx, since, nil, &topic)
}

// GetAllWithdrawals returns the Withdraw events emitted since the given
// height (genesis when nil).
func (c *Client) GetAllWithdrawals(
	ctx context.Context, since *uint64,
) ([]WithdrawEvent, error) {
	return c.queryWithdrawals(ctx, since, nil, nil)
}

// GetWithdrawalsByAccount returns the Withdraw events towards the given
// native address.
func (c *Client) GetWithdrawalsByAccount(
	ctx context.Context, account common.Address, since *uint64,
) ([]WithdrawEvent, error) {
	topic := addressTopic(account)
	return c.queryWithdrawals(ctx, since, &topic, nil)
}

// GetWithdrawalsByAsset returns the Withdraw events of the given asset.
func (c *Client) GetWithdrawalsByAsset(
	ctx context.Context, asset common.Address, since *uint64,
) ([]WithdrawEvent, error) {
	topic := addressTopic(asset)
	return c.queryWithdrawals(ctx, since, nil, &topic)
}

func (c *Client) queryDeposits(
	ctx context.Context, since *uint64, account, asset *common.Hash,
) ([]DepositEvent, error) {
	logs, height, err := c.queryLogs(
		ctx, routerABI.Events["Deposit"].ID, since, account, asset,
	)
	if err != nil {
		return nil, err
	}

	events := make([]DepositEvent, 0, len(logs))
	for _, l := range logs {
		event, err := parseDeposit(l)
		if err != nil {
			log.WithError(err).Warnf(
				"skipping malformed deposit log %s:%d", l.TxHash, l.Index,
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

func (c *Client) queryWithdrawals(
	ctx context.Context, since *uint64, account, asset *common.Hash,
) ([]WithdrawEvent, error) {
	logs, height, err := c.queryLogs(
		ctx, routerABI.Events["Withdraw"].ID, since, account, asset,
	)
	if err != nil {
		return nil, err
	}

	events := make([]WithdrawEvent, 0, len(logs))
	for _, l := range logs {
		event, err := parseWithdraw(l)
		if err != nil {
			log.WithError(err).Warnf(
				"skipping malformed withdraw log %s:%d", l.TxHash, l.Index,
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

// queryLogs fetches the matching logs, then samples the chain height once
// for computing confirmation depths. The height may have advanced between
// the two calls, which only makes the depths conservative.
func (c *Client) queryLogs(
	ctx context.Context,
	eventID common.Hash, since *uint64, account, asset *common.Hash,
) ([]types.Log, uint64, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics:    filterTopics(eventID, account, asset),
	}
	if since != nil {
		query.FromBlock = new(big.Int).SetUint64(*since)
	}

	logs, err := c.svc.FilterLogs(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	height, err := c.svc.BlockNumber(ctx)
	if err != nil {
		return nil, 0, err
	}
	return logs, height, nil
}

func filterTopics(
	eventID common.Hash, account, asset *common.Hash,
) [][]common.Hash {
	topics := [][]common.Hash{{eventID}}
	if account != nil {
		topics = append(topics, []common.Hash{*account})
	} else if asset != nil {
		// empty position matches any account.
		topics = append(topics, nil)
	}
	if asset != nil {
		topics = append(topics, []common.Hash{*asset})
	}
	return topics
}

func parseDeposit(l types.Log) (*DepositEvent, error) {
	if len(l.Topics) != 3 {
		return nil, ErrMalformedLog
	}
	out, err := routerABI.Events["Deposit"].Inputs.NonIndexed().Unpack(l.Data)
	if err != nil {
		return nil, err
	}

	return &DepositEvent{
		Amount:      out[0].(*big.Int),
		Asset:       common.BytesToAddress(l.Topics[2].Bytes()),
		Account:     [32]byte(l.Topics[1]),
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
		BlockHeight: l.BlockNumber,
	}, nil
}

func parseWithdraw(l types.Log) (*WithdrawEvent, error) {
	if len(l.Topics) != 3 {
		return nil, ErrMalformedLog
	}
	out, err := routerABI.Events["Withdraw"].Inputs.NonIndexed().Unpack(l.Data)
	if err != nil {
		return nil, err
	}

	return &WithdrawEvent{
		Amount:      out[0].(*big.Int),
		Asset:       common.BytesToAddress(l.Topics[2].Bytes()),
		Account:     common.BytesToAddress(l.Topics[1].Bytes()),
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
		BlockHeight: l.BlockNumber,
	}, nil
}

func addressTopic(address common.Address) common.Hash {
	return common.BytesToHash(address.Bytes())
}
