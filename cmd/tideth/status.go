package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:  "status",
	Usage: "get the chain height, the Router ownership state and the bridge balances",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "asset",
			Usage: "an asset address to include the balance of",
		},
	},
	Action: statusAction,
}

func statusAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	chainID, err := svc.svc.ChainID(ctx.Context)
	if err != nil {
		return err
	}
	height, err := svc.svc.BlockNumber(ctx.Context)
	if err != nil {
		return err
	}
	owner, err := svc.routerSvc.Owner(ctx.Context)
	if err != nil {
		return err
	}
	pendingOwner, err := svc.routerSvc.PendingOwner(ctx.Context)
	if err != nil {
		return err
	}

	asset := common.Address{}
	if rawAsset := ctx.String("asset"); rawAsset != "" {
		asset = common.HexToAddress(rawAsset)
	}
	routerBalance, err := svc.transferSvc.Balance(
		ctx.Context, asset, svc.routerSvc.Address(),
	)
	if err != nil {
		return err
	}
	safeBalance, err := svc.transferSvc.Balance(
		ctx.Context, asset, svc.safeSvc.Address(),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"chainId":            chainID.String(),
		"blockHeight":        height,
		"router":             svc.routerSvc.Address().Hex(),
		"routerOwner":        owner.Hex(),
		"routerPendingOwner": pendingOwner.Hex(),
		"routerBalance":      routerBalance.String(),
		"safe":               svc.safeSvc.Address().Hex(),
		"safeBalance":        safeBalance.String(),
	})
	return nil
}
