package safeclient

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
)

// Client talks to one deployed multisig account contract. All state lives
// on-chain, the client itself is stateless and safe for concurrent use.
type Client struct {
	svc       ledgerclient.Service
	submitter *ledgerclient.Submitter
	address   common.Address
}

// Opts defines the parameters needed for creating a Client with the
// NewClient method. Submitter may be nil for a read-only client.
type Opts struct {
	Service   ledgerclient.Service
	Submitter *ledgerclient.Submitter
	Address   common.Address
}

// NewClient returns a Client bound to the multisig account at the given
// address.
func NewClient(opts Opts) (*Client, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("missing ledger service")
	}
	return &Client{
		svc:       opts.Service,
		submitter: opts.Submitter,
		address:   opts.Address,
	}, nil
}

// Address returns the on-chain address of the multisig account.
func (c *Client) Address() common.Address {
	return c.address
}

// Nonce returns the current transaction counter of the multisig account.
func (c *Client) Nonce(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "nonce")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

// GetOwners returns the owner set of the multisig account.
func (c *Client) GetOwners(ctx context.Context) ([]common.Address, error) {
	out, err := c.call(ctx, "getOwners")
	if err != nil {
		return nil, err
	}
	return out[0].([]common.Address), nil
}

// GetThreshold returns the number of owner signatures required to execute a
// transaction.
func (c *Client) GetThreshold(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "getThreshold")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

// Setup initializes a freshly deployed multisig account with the given owner
// set and threshold. The callback and payment features of the contract are
// not used and zeroed out.
func (c *Client) Setup(
	ctx context.Context, owners []common.Address, threshold uint64,
) (common.Hash, error) {
	if c.submitter == nil {
		return common.Hash{}, fmt.Errorf("client is read-only")
	}
	zeroAddress := common.Address{}
	data, err := safeABI.Pack(
		"setup",
		owners,
		new(big.Int).SetUint64(threshold),
		zeroAddress,
		[]byte{},
		zeroAddress,
		zeroAddress,
		new(big.Int),
		zeroAddress,
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("packing setup: %w", err)
	}
	receipt, err := c.submitter.Submit(ctx, c.address, nil, data, 0)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// EncodeTransactionData asks the contract itself to encode the transaction
// with the given fields, all refund fields zeroed. Used to cross-check the
// local encoder against the deployed contract revision before collecting
// signatures: a silent mismatch here would only surface as a signature
// verification failure at execution time.
func (c *Client) EncodeTransactionData(
	ctx context.Context,
	to common.Address, value *big.Int, data []byte, nonce uint64,
) ([]byte, error) {
	if value == nil {
		value = new(big.Int)
	}
	zero := new(big.Int)
	zeroAddress := common.Address{}
	out, err := c.call(
		ctx, "encodeTransactionData",
		to, value, data, uint8(0),
		zero, zero, zero, zeroAddress, zeroAddress,
		new(big.Int).SetUint64(nonce),
	)
	if err != nil {
		return nil, err
	}
	return out[0].([]byte), nil
}

// Exec submits an execTransaction call carrying the already-aggregated
// signature blob and blocks until inclusion. It returns the hash of the
// submission transaction and the resource cost actually paid. A gasLimit of
// zero delegates the estimation to the endpoint.
// On *ledgerclient.ConfirmationTimeoutError the execution may still have
// succeeded: reconcile through ExecutionSuccesses before retrying.
func (c *Client) Exec(
	ctx context.Context,
	to common.Address, value *big.Int, data, signatures []byte,
	gasLimit uint64,
) (common.Hash, uint64, error) {
	if c.submitter == nil {
		return common.Hash{}, 0, fmt.Errorf("client is read-only")
	}
	calldata, err := c.packExec(to, value, data, signatures)
	if err != nil {
		return common.Hash{}, 0, err
	}

	receipt, err := c.submitter.Submit(ctx, c.address, nil, calldata, gasLimit)
	if err != nil {
		return common.Hash{}, 0, err
	}
	log.Debugf(
		"executed multisig tx %s, gas used %d", receipt.TxHash, receipt.GasUsed,
	)
	return receipt.TxHash, receipt.GasUsed, nil
}

// EstimateExec estimates the resource cost of executing the given signed
// transaction without submitting it.
func (c *Client) EstimateExec(
	ctx context.Context,
	to common.Address, value *big.Int, data, signatures []byte,
) (uint64, error) {
	if c.submitter == nil {
		return 0, fmt.Errorf("client is read-only")
	}
	calldata, err := c.packExec(to, value, data, signatures)
	if err != nil {
		return 0, err
	}
	return c.submitter.EstimateGas(ctx, c.address, nil, calldata)
}

func (c *Client) packExec(
	to common.Address, value *big.Int, data, signatures []byte,
) ([]byte, error) {
	if value == nil {
		value = new(big.Int)
	}
	zero := new(big.Int)
	zeroAddress := common.Address{}
	calldata, err := safeABI.Pack(
		"execTransaction",
		to, value, data, uint8(0),
		zero, zero, zero, zeroAddress, zeroAddress,
		signatures,
	)
	if err != nil {
		return nil, fmt.Errorf("packing execTransaction: %w", err)
	}
	return calldata, nil
}

func (c *Client) call(
	ctx context.Context, method string, args ...interface{},
) ([]interface{}, error) {
	data, err := safeABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	res, err := c.svc.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, err
	}
	out, err := safeABI.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", method, err)
	}
	return out, nil
}
