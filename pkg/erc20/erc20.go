// Package erc20 exposes the minimal ERC-20 surface the bridge consumes:
// balance lookups and transfer calldata for payouts executed through the
// multisig account.
package erc20

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
)

const erc20ABIJSON = `[
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
    {"name":"owner","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
    {"name":"to","type":"address"},
    {"name":"value","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]}
]`

var erc20ABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		panic(err)
	}
	erc20ABI = parsed
}

// BalanceOf returns the token balance of the given address.
func BalanceOf(
	ctx context.Context, svc ledgerclient.Service,
	asset, address common.Address,
) (*big.Int, error) {
	data, err := erc20ABI.Pack("balanceOf", address)
	if err != nil {
		return nil, fmt.Errorf("packing balanceOf: %w", err)
	}
	res, err := svc.CallContract(ctx, ethereum.CallMsg{
		To:   &asset,
		Data: data,
	}, nil)
	if err != nil {
		return nil, err
	}
	out, err := erc20ABI.Unpack("balanceOf", res)
	if err != nil {
		return nil, fmt.Errorf("unpacking balanceOf: %w", err)
	}
	return out[0].(*big.Int), nil
}

// TransferData returns the calldata of a token transfer, meant to be
// executed by the multisig account.
func TransferData(to common.Address, amount *big.Int) ([]byte, error) {
	data, err := erc20ABI.Pack("transfer", to, amount)
	if err != nil {
		return nil, fmt.Errorf("packing transfer: %w", err)
	}
	return data, nil
}
