package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var claimownership = cli.Command{
	Name:  "claimownership",
	Usage: "complete a pending Router ownership transfer",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "direct",
			Usage: "claim for the submitter's account instead of the multisig account",
		},
	},
	Action: claimOwnershipAction,
}

func claimOwnershipAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var txHash common.Hash
	if ctx.Bool("direct") {
		txHash, err = svc.routerSvc.ClaimOwnership(ctx.Context)
	} else {
		txHash, err = svc.transferSvc.ClaimRouterOwnership(ctx.Context)
	}
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}
