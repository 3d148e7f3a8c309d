package ledgerclient

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sony/gobreaker"
	"github.com/tidelabs/tideth/pkg/circuitbreaker"
	"golang.org/x/time/rate"
)

const defaultRequestsPerSecond = 20

type client struct {
	ec      *ethclient.Client
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewService dials the given RPC endpoint and returns it wrapped as a
// ledgerclient.Service. The endpoint must answer a chain height request,
// otherwise the dial is considered failed.
func NewService(ctx context.Context, rpcURL string) (Service, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dialing ledger endpoint: %w", err)
	}

	svc := &client{
		ec: ec,
		cb: circuitbreaker.NewCircuitBreaker("ledgerclient", func(err error) bool {
			// a missing receipt is a polling answer, not an outage.
			return err == nil || err == ethereum.NotFound
		}),
		limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
	}

	if _, err := svc.BlockNumber(ctx); err != nil {
		ec.Close()
		return nil, fmt.Errorf("health check: %w", err)
	}

	return svc, nil
}

func (c *client) ChainID(ctx context.Context) (*big.Int, error) {
	res, err := c.do(ctx, "chain id", func() (interface{}, error) {
		return c.ec.ChainID(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (c *client) BlockNumber(ctx context.Context) (uint64, error) {
	res, err := c.do(ctx, "block number", func() (interface{}, error) {
		return c.ec.BlockNumber(ctx)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (c *client) Balance(
	ctx context.Context, address common.Address,
) (*big.Int, error) {
	res, err := c.do(ctx, "balance", func() (interface{}, error) {
		return c.ec.BalanceAt(ctx, address, nil)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (c *client) PendingNonceAt(
	ctx context.Context, address common.Address,
) (uint64, error) {
	res, err := c.do(ctx, "pending nonce", func() (interface{}, error) {
		return c.ec.PendingNonceAt(ctx, address)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (c *client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	res, err := c.do(ctx, "gas price", func() (interface{}, error) {
		return c.ec.SuggestGasPrice(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (c *client) EstimateGas(
	ctx context.Context, msg ethereum.CallMsg,
) (uint64, error) {
	res, err := c.do(ctx, "estimate gas", func() (interface{}, error) {
		return c.ec.EstimateGas(ctx, msg)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (c *client) CallContract(
	ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int,
) ([]byte, error) {
	res, err := c.do(ctx, "call", func() (interface{}, error) {
		return c.ec.CallContract(ctx, msg, blockNumber)
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

func (c *client) SendTransaction(
	ctx context.Context, tx *types.Transaction,
) error {
	_, err := c.do(ctx, "send transaction", func() (interface{}, error) {
		return nil, c.ec.SendTransaction(ctx, tx)
	})
	return err
}

func (c *client) TransactionReceipt(
	ctx context.Context, txHash common.Hash,
) (*types.Receipt, error) {
	res, err := c.do(ctx, "transaction receipt", func() (interface{}, error) {
		return c.ec.TransactionReceipt(ctx, txHash)
	})
	if err != nil {
		return nil, err
	}
	return res.(*types.Receipt), nil
}

func (c *client) FilterLogs(
	ctx context.Context, query ethereum.FilterQuery,
) ([]types.Log, error) {
	res, err := c.do(ctx, "filter logs", func() (interface{}, error) {
		return c.ec.FilterLogs(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return res.([]types.Log), nil
}

func (c *client) SubscribeFilterLogs(
	ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log,
) (ethereum.Subscription, error) {
	// long-lived, bypasses the breaker on purpose.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	sub, err := c.ec.SubscribeFilterLogs(ctx, query, ch)
	if err != nil {
		return nil, &TransportError{Op: "subscribe logs", Err: err}
	}
	return sub, nil
}

func (c *client) Close() {
	c.ec.Close()
}

func (c *client) do(
	ctx context.Context, op string, fn func() (interface{}, error),
) (interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.cb.Execute(fn)
	if err != nil {
		if err == ethereum.NotFound {
			return nil, err
		}
		return nil, &TransportError{Op: op, Err: err}
	}
	return res, nil
}
