package main

import (
	"github.com/urfave/cli/v2"
)

var listexecutions = cli.Command{
	Name:  "listexecutions",
	Usage: "get the ExecutionSuccess events emitted by the multisig account",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "since",
			Usage: "the height to start from. If omitted, the whole history is returned",
		},
		&cli.StringFlag{
			Name:  "inner-tx-hash",
			Usage: "look a single execution up by the signed digest (implies --local)",
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
	Action: listExecutionsAction,
}

func listExecutionsAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if ctx.Bool("local") || ctx.String("inner-tx-hash") != "" {
		return listLocalExecutions(ctx, svc)
	}

	var since *uint64
	if ctx.IsSet("since") {
		s := ctx.Uint64("since")
		since = &s
	}

	executions, err := svc.safeSvc.ExecutionSuccesses(ctx.Context, since)
	if err != nil {
		return err
	}

	views := make([]map[string]interface{}, 0, len(executions))
	for _, e := range executions {
		views = append(views, map[string]interface{}{
			"txHash":        e.TxHash.Hex(),
			"logIndex":      e.LogIndex,
			"innerTxHash":   e.InnerTxHash.Hex(),
			"payment":       e.Payment.String(),
			"blockHeight":   e.BlockHeight,
			"confirmations": e.Confirmations,
		})
	}
	printRespJSON(views)
	return nil
}

func listLocalExecutions(ctx *cli.Context, svc *services) error {
	historySvc, closeDb, err := getHistoryService(svc)
	if err != nil {
		return err
	}
	defer closeDb()

	if innerTxHash := ctx.String("inner-tx-hash"); innerTxHash != "" {
		execution, err := historySvc.GetExecutionByInnerTxHash(
			ctx.Context, innerTxHash,
		)
		if err != nil {
			return err
		}
		printRespJSON(execution)
		return nil
	}

	executions, err := historySvc.ListExecutions(ctx.Context, parsePage(ctx))
	if err != nil {
		return err
	}
	printRespJSON(executions)
	return nil
}
