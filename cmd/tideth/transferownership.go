package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var transferownership = cli.Command{
	Name:  "transferownership",
	Usage: "start handing the Router over to a new owner",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "new-owner",
			Usage: "the new owner address. If omitted, the multisig account address is used",
		},
	},
	Action: transferOwnershipAction,
}

func transferOwnershipAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	newOwner := svc.safeSvc.Address()
	if raw := ctx.String("new-owner"); raw != "" {
		if !common.IsHexAddress(raw) {
			return fmt.Errorf("invalid new owner address")
		}
		newOwner = common.HexToAddress(raw)
	}

	txHash, err := svc.routerSvc.TransferOwnership(ctx.Context, newOwner)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{
		"txHash":       txHash.Hex(),
		"pendingOwner": newOwner.Hex(),
	})
	return nil
}
