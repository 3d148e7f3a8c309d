package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var transfertoken = cli.Command{
	Name:  "transfertoken",
	Usage: "pay out tokens held directly by the multisig account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "the asset address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the destination address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the decimal amount to transfer",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "decimals",
			Usage: "the number of decimals of the asset",
			Value: 18,
		},
	},
	Action: transferTokenAction,
}

func transferTokenAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rawAsset, rawTo := ctx.String("asset"), ctx.String("to")
	if !common.IsHexAddress(rawAsset) {
		return fmt.Errorf("invalid asset address")
	}
	if !common.IsHexAddress(rawTo) {
		return fmt.Errorf("invalid destination address")
	}
	amount, err := parseAmount(ctx.String("amount"), int32(ctx.Int("decimals")))
	if err != nil {
		return err
	}

	txHash, err := svc.transferSvc.TransferToken(
		ctx.Context,
		common.HexToAddress(rawAsset), common.HexToAddress(rawTo), amount,
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}
