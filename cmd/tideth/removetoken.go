package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var removetoken = cli.Command{
	Name:  "removetoken",
	Usage: "remove an asset from the Router's accept-list",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "the asset address to remove",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "direct",
			Usage: "submit as the Router owner instead of going through the multisig account",
		},
	},
	Action: removeTokenAction,
}

func removeTokenAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rawAsset := ctx.String("asset")
	if !common.IsHexAddress(rawAsset) {
		return fmt.Errorf("invalid asset address")
	}
	asset := common.HexToAddress(rawAsset)

	var txHash common.Hash
	if ctx.Bool("direct") {
		txHash, err = svc.routerSvc.RemoveToken(ctx.Context, asset)
	} else {
		txHash, err = svc.transferSvc.RemoveToken(ctx.Context, asset)
	}
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}
