package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var setupsafe = cli.Command{
	Name:  "setup",
	Usage: "initialize a freshly deployed multisig account with owners and threshold",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "owner",
			Usage:    "an owner address, repeat the flag for each owner",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "threshold",
			Usage:    "the number of owner signatures required per execution",
			Required: true,
		},
	},
	Action: setupSafeAction,
}

func setupSafeAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rawOwners := ctx.StringSlice("owner")
	owners := make([]common.Address, 0, len(rawOwners))
	for _, raw := range rawOwners {
		if !common.IsHexAddress(raw) {
			return fmt.Errorf("invalid owner address %s", raw)
		}
		owners = append(owners, common.HexToAddress(raw))
	}
	threshold := ctx.Uint64("threshold")
	if threshold == 0 || threshold > uint64(len(owners)) {
		return fmt.Errorf(
			"threshold must be in range [1, %d]", len(owners),
		)
	}

	txHash, err := svc.safeSvc.Setup(ctx.Context, owners, threshold)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txHash": txHash.Hex()})
	return nil
}
