package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var withdraw = cli.Command{
	Name:  "withdraw",
	Usage: "withdraw an asset amount from the Router through the multisig account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the destination address",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "the asset address. If omitted, the native asset is withdrawn",
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the decimal amount to withdraw",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "decimals",
			Usage: "the number of decimals of the asset",
			Value: 18,
		},
	},
	Action: withdrawAction,
}

func withdrawAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rawTo := ctx.String("to")
	if !common.IsHexAddress(rawTo) {
		return fmt.Errorf("invalid destination address")
	}
	asset := common.Address{}
	if rawAsset := ctx.String("asset"); rawAsset != "" {
		if !common.IsHexAddress(rawAsset) {
			return fmt.Errorf("invalid asset address")
		}
		asset = common.HexToAddress(rawAsset)
	}
	amount, err := parseAmount(ctx.String("amount"), int32(ctx.Int("decimals")))
	if err != nil {
		return err
	}

	txHash, err := svc.transferSvc.Withdraw(
		ctx.Context, common.HexToAddress(rawTo), asset, amount,
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}
