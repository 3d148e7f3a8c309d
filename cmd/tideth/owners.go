package main

import (
	"github.com/urfave/cli/v2"
)

var owners = cli.Command{
	Name:   "owners",
	Usage:  "get the owner set and threshold of the multisig account",
	Action: ownersAction,
}

func ownersAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ownerSet, err := svc.safeSvc.GetOwners(ctx.Context)
	if err != nil {
		return err
	}
	threshold, err := svc.safeSvc.GetThreshold(ctx.Context)
	if err != nil {
		return err
	}
	nonce, err := svc.safeSvc.Nonce(ctx.Context)
	if err != nil {
		return err
	}

	ownerHexes := make([]string, 0, len(ownerSet))
	for _, owner := range ownerSet {
		ownerHexes = append(ownerHexes, owner.Hex())
	}
	printRespJSON(map[string]interface{}{
		"owners":    ownerHexes,
		"threshold": threshold,
		"nonce":     nonce,
	})
	return nil
}
