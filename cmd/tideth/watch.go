package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tidelabs/tideth/internal/config"
	"github.com/tidelabs/tideth/internal/core/application"
	"github.com/tidelabs/tideth/internal/core/ports"
	dbbadger "github.com/tidelabs/tideth/internal/infrastructure/storage/db/badger"
	"github.com/tidelabs/tideth/internal/infrastructure/storage/db/inmemory"
	"github.com/tidelabs/tideth/pkg/crawler"
)

var watch = cli.Command{
	Name:   "watch",
	Usage:  "run the event ingestion daemon, storing bridge activity locally",
	Action: watchAction,
}

func watchAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	dbManager, err := openDb()
	if err != nil {
		return err
	}
	defer dbManager.Close()

	startBlock := config.GetUint64(config.StartBlockKey)
	crawlerSvc := crawler.NewService(crawler.Opts{
		IntervalInMilliseconds: config.GetInt(config.CrawlIntervalKey),
		RequestsPerSecond:      float64(config.GetInt(config.CrawlLimitKey)),
		ErrorHandler: func(err error) {
			log.WithError(err).Warn("crawler error")
		},
	})
	crawlerSvc.AddObservable(
		crawler.NewDepositObservable(svc.routerSvc, startBlock),
	)
	crawlerSvc.AddObservable(
		crawler.NewWithdrawalObservable(svc.routerSvc, startBlock),
	)
	crawlerSvc.AddObservable(
		crawler.NewExecutionObservable(svc.safeSvc, startBlock),
	)

	listener := application.NewLedgerListener(
		dbManager.DepositRepository(),
		dbManager.WithdrawalRepository(),
		dbManager.ExecutionRepository(),
		crawlerSvc,
	)
	listener.ObserveLedger()
	log.Infof("watching router %s", svc.routerSvc.Address())

	runCtx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	// the polling crawler covers http-only endpoints, the subscription cuts
	// the latency down when the endpoint supports it.
	depositChan, subErrChan, err := svc.routerSvc.SubscribeDeposits(gCtx)
	if err != nil {
		log.WithError(err).Info(
			"deposit subscription unavailable, relying on polling only",
		)
	} else {
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return nil
				case err := <-subErrChan:
					return err
				case event, ok := <-depositChan:
					if !ok {
						return nil
					}
					log.Infof(
						"deposit %s credited to account %x",
						event.TxHash, event.Account,
					)
				}
			}
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		listener.StopObserveLedger()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("shutdown")
	return nil
}

func openDb() (ports.DbManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewDbManager(), nil
	}
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	return dbbadger.NewDbManager(dbDir, nil)
}
