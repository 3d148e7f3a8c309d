package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tidelabs/tideth/internal/core/application"
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/urfave/cli/v2"
)

var listwithdrawals = cli.Command{
	Name:  "listwithdrawals",
	Usage: "get the Withdraw events emitted by the Router",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "account",
			Usage: "filter by destination address",
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "filter by asset address",
		},
		&cli.Uint64Flag{
			Name:  "since",
			Usage: "the height to start from. If omitted, the whole history is returned",
		},
		&cli.BoolFlag{
			Name:  "local",
			Usage: "read from the database populated by the watch daemon instead of the chain",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "page number when reading locally",
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "page size when reading locally",
		},
	},
	Action: listWithdrawalsAction,
}

func listWithdrawalsAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if ctx.Bool("local") {
		return listLocalWithdrawals(ctx, svc)
	}

	var since *uint64
	if ctx.IsSet("since") {
		s := ctx.Uint64("since")
		since = &s
	}

	var withdrawals []routerclient.WithdrawEvent
	switch {
	case ctx.String("account") != "":
		rawAccount := ctx.String("account")
		if !common.IsHexAddress(rawAccount) {
			return fmt.Errorf("invalid destination address")
		}
		withdrawals, err = svc.routerSvc.GetWithdrawalsByAccount(
			ctx.Context, common.HexToAddress(rawAccount), since,
		)
		if err != nil {
			return err
		}
	case ctx.String("asset") != "":
		rawAsset := ctx.String("asset")
		if !common.IsHexAddress(rawAsset) {
			return fmt.Errorf("invalid asset address")
		}
		withdrawals, err = svc.routerSvc.GetWithdrawalsByAsset(
			ctx.Context, common.HexToAddress(rawAsset), since,
		)
		if err != nil {
			return err
		}
	default:
		withdrawals, err = svc.routerSvc.GetAllWithdrawals(ctx.Context, since)
		if err != nil {
			return err
		}
	}

	views := make([]map[string]interface{}, 0, len(withdrawals))
	for _, w := range withdrawals {
		views = append(views, map[string]interface{}{
			"txHash":        w.TxHash.Hex(),
			"logIndex":      w.LogIndex,
			"account":       w.Account.Hex(),
			"asset":         w.Asset.Hex(),
			"amount":        w.Amount.String(),
			"blockHeight":   w.BlockHeight,
			"confirmations": w.Confirmations,
		})
	}
	printRespJSON(views)
	return nil
}

func listLocalWithdrawals(ctx *cli.Context, svc *services) error {
	historySvc, closeDb, err := getHistoryService(svc)
	if err != nil {
		return err
	}
	defer closeDb()

	page := parsePage(ctx)
	var withdrawals []application.WithdrawalInfo
	switch {
	case ctx.String("account") != "":
		withdrawals, err = historySvc.ListWithdrawalsForAccount(
			ctx.Context, ctx.String("account"), page,
		)
	case ctx.String("asset") != "":
		withdrawals, err = historySvc.ListWithdrawalsForAsset(
			ctx.Context, ctx.String("asset"), page,
		)
	default:
		withdrawals, err = historySvc.ListWithdrawals(ctx.Context, page)
	}
	if err != nil {
		return err
	}
	printRespJSON(withdrawals)
	return nil
}
