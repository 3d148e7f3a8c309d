package ledgerclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Service is the representation of the remote ledger endpoint. It allows to
// read chain state, to submit signed transactions and to fetch or subscribe
// to contract event logs. Every component takes an explicit Service handle,
// there is no ambient connection.
type Service interface {
	// ChainID returns the identifier of the chain the endpoint serves.
	ChainID(ctx context.Context) (*big.Int, error)
	// BlockNumber returns the current chain height.
	BlockNumber(ctx context.Context) (uint64, error)
	// Balance returns the native-asset balance of the given address.
	Balance(ctx context.Context, address common.Address) (*big.Int, error)
	// PendingNonceAt returns the ledger-level transaction count of the
	// given address, including pending transactions.
	PendingNonceAt(ctx context.Context, address common.Address) (uint64, error)
	// SuggestGasPrice returns the gas price suggested by the endpoint.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	// EstimateGas estimates the resource cost of the given call.
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	// CallContract executes a read-only contract call.
	CallContract(
		ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int,
	) ([]byte, error)
	// SendTransaction submits a signed transaction.
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	// TransactionReceipt returns the receipt of the tx identified by its
	// hash, or ethereum.NotFound if it's not yet included.
	TransactionReceipt(
		ctx context.Context, txHash common.Hash,
	) (*types.Receipt, error)
	// FilterLogs returns the logs matching the given query.
	FilterLogs(
		ctx context.Context, query ethereum.FilterQuery,
	) ([]types.Log, error)
	// SubscribeFilterLogs subscribes to new logs matching the given query.
	// It requires the endpoint to support subscriptions (ws transport).
	SubscribeFilterLogs(
		ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log,
	) (ethereum.Subscription, error)
	// Close tears down the underlying connection.
	Close()
}
