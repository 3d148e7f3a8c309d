package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tidelabs/tideth/internal/core/application"
	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/urfave/cli/v2"
)

var listdeposits = cli.Command{
	Name:  "listdeposits",
	Usage: "get the Deposit events emitted by the Router",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "account",
			Usage: "filter by the 0x-prefixed 32-byte destination account identifier",
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
	Action: listDepositsAction,
}

func listDepositsAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if ctx.Bool("local") {
		return listLocalDeposits(ctx, svc)
	}

	var since *uint64
	if ctx.IsSet("since") {
		s := ctx.Uint64("since")
		since = &s
	}

	var deposits []routerclient.DepositEvent
	switch {
	case ctx.String("account") != "":
		account, err := parseAccountID(ctx.String("account"))
		if err != nil {
			return err
		}
		deposits, err = svc.routerSvc.GetDepositsByAccount(
			ctx.Context, account, since,
		)
		if err != nil {
			return err
		}
	case ctx.String("asset") != "":
		rawAsset := ctx.String("asset")
		if !common.IsHexAddress(rawAsset) {
			return fmt.Errorf("invalid asset address")
		}
		deposits, err = svc.routerSvc.GetDepositsByAsset(
			ctx.Context, common.HexToAddress(rawAsset), since,
		)
		if err != nil {
			return err
		}
	default:
		deposits, err = svc.routerSvc.GetAllDeposits(ctx.Context, since)
		if err != nil {
			return err
		}
	}

	views := make([]map[string]interface{}, 0, len(deposits))
	for _, d := range deposits {
		views = append(views, map[string]interface{}{
			"txHash":        d.TxHash.Hex(),
			"logIndex":      d.LogIndex,
			"account":       common.Hash(d.Account).Hex(),
			"asset":         d.Asset.Hex(),
			"amount":        d.Amount.String(),
			"blockHeight":   d.BlockHeight,
			"confirmations": d.Confirmations,
		})
	}
	printRespJSON(views)
	return nil
}

func listLocalDeposits(ctx *cli.Context, svc *services) error {
	historySvc, closeDb, err := getHistoryService(svc)
	if err != nil {
		return err
	}
	defer closeDb()

	page := parsePage(ctx)
	var deposits []application.DepositInfo
	switch {
	case ctx.String("account") != "":
		deposits, err = historySvc.ListDepositsForAccount(
			ctx.Context, ctx.String("account"), page,
		)
	case ctx.String("asset") != "":
		deposits, err = historySvc.ListDepositsForAsset(
			ctx.Context, ctx.String("asset"), page,
		)
	default:
		deposits, err = historySvc.ListDeposits(ctx.Context, page)
	}
	if err != nil {
		return err
	}
	printRespJSON(deposits)
	return nil
}

// getHistoryService opens the watch daemon's database read side. The returned
// closer must be deferred by the caller.
func getHistoryService(svc *services) (application.HistoryService, func(), error) {
	dbManager, err := openDb()
	if err != nil {
		return nil, nil, err
	}
	historySvc := application.NewHistoryService(
		svc.svc,
		dbManager.DepositRepository(),
		dbManager.WithdrawalRepository(),
		dbManager.ExecutionRepository(),
	)
	return historySvc, func() { dbManager.Close() }, nil
}

func parsePage(ctx *cli.Context) *domain.Page {
	if !ctx.IsSet("page") && !ctx.IsSet("page-size") {
		return nil
	}
	page := domain.NewPage(ctx.Int("page"), ctx.Int("page-size"))
	return &page
}
