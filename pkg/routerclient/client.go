package routerclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
)

// ErrValueMismatch is thrown when depositing the native asset with a value
// that differs from the declared amount.
var ErrValueMismatch = errors.New("tx value must equal the deposit amount")

// Client talks to one deployed Router contract. All state lives on-chain,
// the client itself is stateless and safe for concurrent use.
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

// NewClient returns a Client bound to the Router at the given address.
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

// Address returns the on-chain address of the Router.
func (c *Client) Address() common.Address {
	return c.address
}

// BlockNumber returns the current chain height.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.svc.BlockNumber(ctx)
}

// Deposit submits a deposit of the given asset amount credited to the given
// 32-byte destination account. For native-asset deposits value must be set
// and equal to amount; for token deposits it must be nil.
// It returns the hash of the submission transaction and the resource cost.
func (c *Client) Deposit(
	ctx context.Context,
	account [32]byte, asset common.Address, amount, value *big.Int,
) (common.Hash, uint64, error) {
	if c.submitter == nil {
		return common.Hash{}, 0, fmt.Errorf("client is read-only")
	}
	if value != nil && value.Cmp(amount) != 0 {
		return common.Hash{}, 0, ErrValueMismatch
	}

	data, err := routerABI.Pack("deposit", account, asset, amount)
	if err != nil {
		return common.Hash{}, 0, fmt.Errorf("packing deposit: %w", err)
	}
	receipt, err := c.submitter.Submit(ctx, c.address, value, data, 0)
	if err != nil {
		return common.Hash{}, 0, err
	}
	log.Debugf("deposit submitted in tx %s", receipt.TxHash)
	return receipt.TxHash, receipt.GasUsed, nil
}

// TransferOwnership starts handing the Router over to a new owner, typically
// the multisig account. The new owner has to claim it to complete the
// transfer.
func (c *Client) TransferOwnership(
	ctx context.Context, newOwner common.Address,
) (common.Hash, error) {
	return c.submit(ctx, "transferOwnership", newOwner)
}

// ClaimOwnership completes an ownership transfer towards the submitter's
// account. Claiming on behalf of the multisig account goes through
// ClaimOwnershipData and a multisig execution instead.
func (c *Client) ClaimOwnership(ctx context.Context) (common.Hash, error) {
	return c.submit(ctx, "claimOwnership")
}

// Owner returns the current owner of the Router.
func (c *Client) Owner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// PendingOwner returns the address of a pending ownership transfer, the zero
// address when there is none.
func (c *Client) PendingOwner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "pendingOwner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// AcceptToken adds the given asset to the Router's accept-list.
func (c *Client) AcceptToken(
	ctx context.Context, asset common.Address,
) (common.Hash, error) {
	return c.submit(ctx, "acceptToken", asset)
}

// RemoveToken removes the given asset from the Router's accept-list.
func (c *Client) RemoveToken(
	ctx context.Context, asset common.Address,
) (common.Hash, error) {
	return c.submit(ctx, "removeToken", asset)
}

// IsAccepted returns whether the given asset is accept-listed for deposits.
func (c *Client) IsAccepted(
	ctx context.Context, asset common.Address,
) (bool, error) {
	out, err := c.call(ctx, "isAccepted", asset)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// WithdrawalData returns the calldata of a withdrawal of the given asset
// amount to the given address, meant to be executed by the Router's owner,
// ie. the multisig account.
func (c *Client) WithdrawalData(
	to, asset common.Address, amount *big.Int,
) ([]byte, error) {
	data, err := routerABI.Pack("withdraw", to, asset, amount)
	if err != nil {
		return nil, fmt.Errorf("packing withdraw: %w", err)
	}
	return data, nil
}

// NativeWithdrawalData returns the calldata of a native-asset withdrawal,
// identified by the zero asset address.
func (c *Client) NativeWithdrawalData(
	to common.Address, amount *big.Int,
) ([]byte, error) {
	return c.WithdrawalData(to, common.Address{}, amount)
}

// ClaimOwnershipData returns the calldata of a claimOwnership call, meant to
// be executed by the multisig account to complete an ownership transfer.
func (c *Client) ClaimOwnershipData() ([]byte, error) {
	data, err := routerABI.Pack("claimOwnership")
	if err != nil {
		return nil, fmt.Errorf("packing claimOwnership: %w", err)
	}
	return data, nil
}

// AcceptTokenData returns the calldata of an acceptToken call, meant to be
// executed by the multisig account once it owns the Router.
func (c *Client) AcceptTokenData(asset common.Address) ([]byte, error) {
	data, err := routerABI.Pack("acceptToken", asset)
	if err != nil {
		return nil, fmt.Errorf("packing acceptToken: %w", err)
	}
	return data, nil
}

// RemoveTokenData returns the calldata of a removeToken call, meant to be
// executed by the multisig account once it owns the Router.
func (c *Client) RemoveTokenData(asset common.Address) ([]byte, error) {
	data, err := routerABI.Pack("removeToken", asset)
	if err != nil {
		return nil, fmt.Errorf("packing removeToken: %w", err)
	}
	return data, nil
}

func (c *Client) submit(
	ctx context.Context, method string, args ...interface{},
) (common.Hash, error) {
	if c.submitter == nil {
		return common.Hash{}, fmt.Errorf("client is read-only")
	}
	data, err := routerABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("packing %s: %w", method, err)
	}
	receipt, err := c.submitter.Submit(ctx, c.address, nil, data, 0)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

func (c *Client) call(
	ctx context.Context, method string, args ...interface{},
) ([]interface{}, error) {
	data, err := routerABI.Pack(method, args...)
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
	out, err := routerABI.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", method, err)
	}
	return out, nil
}
