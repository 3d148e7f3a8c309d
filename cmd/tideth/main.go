package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tidelabs/tideth/internal/config"
	"github.com/tidelabs/tideth/internal/core/application"
	"github.com/tidelabs/tideth/internal/core/ports"
	"github.com/tidelabs/tideth/internal/infrastructure/signer"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/tidelabs/tideth/pkg/safeclient"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "tideth CLI"
	app.Usage = "Command line interface for the tideth bridge"
	app.Commands = append(
		app.Commands,
		&deposit,
		&withdraw,
		&transfertoken,
		&setupsafe,
		&owners,
		&status,
		&accepttoken,
		&removetoken,
		&transferownership,
		&claimownership,
		&listdeposits,
		&listwithdrawals,
		&listexecutions,
		&watch,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

type services struct {
	svc         ledgerclient.Service
	routerSvc   *routerclient.Client
	safeSvc     *safeclient.Client
	transferSvc application.TransferService
}

// getServices wires the ledger connection and the contract clients from the
// environment config. The returned cleanup must be deferred by the caller.
func getServices(ctx *cli.Context) (*services, func(), error) {
	svc, err := ledgerclient.NewService(
		ctx.Context, config.GetString(config.LedgerURLKey),
	)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { svc.Close() }

	if expected := config.GetUint64(config.ChainIDKey); expected > 0 {
		chainID, err := svc.ChainID(ctx.Context)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if chainID.Uint64() != expected {
			cleanup()
			return nil, nil, fmt.Errorf(
				"endpoint serves chain %s, expected %d", chainID, expected,
			)
		}
	}

	var submitter *ledgerclient.Submitter
	hashSigners := []ports.HashSigner{}
	for i, hexKey := range config.GetPrivateKeys() {
		local, err := signer.NewLocalFromHex(hexKey)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("parsing private key %d: %w", i, err)
		}
		hashSigners = append(hashSigners, local)
		if submitter == nil {
			// the first key pays for the outer transactions.
			submitter, err = ledgerclient.NewSubmitter(
				ctx.Context, ledgerclient.SubmitterOpts{
					Service: svc,
					Signer:  local,
					ConfirmationTimeout: time.Duration(
						config.GetInt(config.ConfirmationTimeoutKey),
					) * time.Second,
					PollingInterval: time.Duration(
						config.GetInt(config.PollingIntervalKey),
					) * time.Millisecond,
				},
			)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
		}
	}

	routerSvc, err := routerclient.NewClient(routerclient.Opts{
		Service:   svc,
		Submitter: submitter,
		Address:   config.GetRouterAddress(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	safeSvc, err := safeclient.NewClient(safeclient.Opts{
		Service:   svc,
		Submitter: submitter,
		Address:   config.GetSafeAddress(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &services{
		svc:       svc,
		routerSvc: routerSvc,
		safeSvc:   safeSvc,
		transferSvc: application.NewTransferService(
			svc, routerSvc, safeSvc, hashSigners,
		),
	}, cleanup, nil
}

// parseAmount converts a decimal asset amount into its integer on-chain
// representation with the given number of decimals.
func parseAmount(raw string, decimals int32) (*big.Int, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	shifted := amount.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf(
			"amount has more than %d decimal places", decimals,
		)
	}
	return shifted.BigInt(), nil
}

// formatAmount renders an integer on-chain amount with the given number of
// decimals.
func formatAmount(amount *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount, -decimals).String()
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}
	fmt.Println(string(jsonStr))
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[tideth] %v\n", err)
	os.Exit(1)
}

func init() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
}
