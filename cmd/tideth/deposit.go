package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "deposit an asset amount credited to a destination account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "account",
			Usage:    "the 0x-prefixed 32-byte destination account identifier",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "the asset address. If omitted, the native asset is deposited",
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the decimal amount to deposit",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "decimals",
			Usage: "the number of decimals of the asset",
			Value: 18,
		},
	},
	Action: depositAction,
}

func depositAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := parseAccountID(ctx.String("account"))
	if err != nil {
		return err
	}
	decimals := int32(ctx.Int("decimals"))
	amount, err := parseAmount(ctx.String("amount"), decimals)
	if err != nil {
		return err
	}

	var txHash common.Hash
	if rawAsset := ctx.String("asset"); rawAsset != "" {
		if !common.IsHexAddress(rawAsset) {
			return fmt.Errorf("invalid asset address")
		}
		txHash, err = svc.transferSvc.DepositToken(
			ctx.Context, account, common.HexToAddress(rawAsset), amount,
		)
	} else {
		txHash, err = svc.transferSvc.DepositNative(ctx.Context, account, amount)
	}
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}

func parseAccountID(raw string) ([32]byte, error) {
	decoded, err := hexutil.Decode(raw)
	if err != nil || len(decoded) != common.HashLength {
		return [32]byte{}, fmt.Errorf("invalid 32-byte account identifier")
	}
	return [32]byte(common.BytesToHash(decoded)), nil
}
