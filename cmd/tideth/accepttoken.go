package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var accepttoken = cli.Command{
	Name:  "accepttoken",
	Usage: "accept-list an asset on the Router",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "the asset address to accept-list",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "direct",
			Usage: "submit as the Router owner instead of going through the multisig account",
		},
	},
	Action: acceptTokenAction,
}

func acceptTokenAction(ctx *cli.Context) error {
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
		txHash, err = svc.routerSvc.AcceptToken(ctx.Context, asset)
	} else {
		txHash, err = svc.transferSvc.AcceptToken(ctx.Context, asset)
	}
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}
