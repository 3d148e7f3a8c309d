package application

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/pkg/crawler"
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/tidelabs/tideth/pkg/safeclient"
)

// LedgerListener defines the needed methods to start and stop the ingestion
// of ledger events into the local stores.
type LedgerListener interface {
	ObserveLedger()
	StopObserveLedger()
}

type ledgerListener struct {
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
	executionRepository  domain.ExecutionRepository
	crawlerSvc           crawler.Service
}

// NewLedgerListener returns a LedgerListener storing the events observed by
// the given crawler. Ingestion is idempotent, records already stored are
// skipped, so replaying an overlapping block range is safe.
func NewLedgerListener(
	depositRepository domain.DepositRepository,
	withdrawalRepository domain.WithdrawalRepository,
	executionRepository domain.ExecutionRepository,
	crawlerSvc crawler.Service,
) LedgerListener {
	return &ledgerListener{
		depositRepository:    depositRepository,
		withdrawalRepository: withdrawalRepository,
		executionRepository:  executionRepository,
		crawlerSvc:           crawlerSvc,
	}
}

func (l *ledgerListener) ObserveLedger() {
	go l.crawlerSvc.Start()
	go l.handleLedgerEvents()
}

func (l *ledgerListener) StopObserveLedger() {
	l.crawlerSvc.Stop()
}

func (l *ledgerListener) handleLedgerEvents() {
	for event := range l.crawlerSvc.GetEventChannel() {
		ctx := context.Background()

		switch e := event.(type) {
		case crawler.DepositsEvent:
			count, err := l.depositRepository.AddDeposits(
				ctx, depositsFromEvents(e.Deposits),
			)
			if err != nil {
				log.Warnf("trying to store deposits: %s", err)
				continue
			}
			log.Debugf("stored %d new deposits", count)
		case crawler.WithdrawalsEvent:
			count, err := l.withdrawalRepository.AddWithdrawals(
				ctx, withdrawalsFromEvents(e.Withdrawals),
			)
			if err != nil {
				log.Warnf("trying to store withdrawals: %s", err)
				continue
			}
			log.Debugf("stored %d new withdrawals", count)
		case crawler.ExecutionsEvent:
			count, err := l.executionRepository.AddExecutions(
				ctx, executionsFromEvents(e.Executions),
			)
			if err != nil {
				log.Warnf("trying to store executions: %s", err)
				continue
			}
			log.Debugf("stored %d new executions", count)
		case crawler.QuitEvent:
			return
		}
	}
}

func depositsFromEvents(events []routerclient.DepositEvent) []domain.Deposit {
	deposits := make([]domain.Deposit, 0, len(events))
	for _, e := range events {
		deposits = append(deposits, domain.Deposit{
			TxID:        e.TxHash.Hex(),
			LogIndex:    e.LogIndex,
			Account:     common.Hash(e.Account).Hex(),
			Asset:       e.Asset.Hex(),
			Amount:      e.Amount,
			BlockHeight: e.BlockHeight,
		})
	}
	return deposits
}

func withdrawalsFromEvents(
	events []routerclient.WithdrawEvent,
) []domain.Withdrawal {
	withdrawals := make([]domain.Withdrawal, 0, len(events))
	for _, e := range events {
		withdrawals = append(withdrawals, domain.Withdrawal{
			TxID:        e.TxHash.Hex(),
			LogIndex:    e.LogIndex,
			Account:     e.Account.Hex(),
			Asset:       e.Asset.Hex(),
			Amount:      e.Amount,
			BlockHeight: e.BlockHeight,
		})
	}
	return withdrawals
}

func executionsFromEvents(
	events []safeclient.ExecutionSuccessEvent,
) []domain.ExecutionSuccess {
	executions := make([]domain.ExecutionSuccess, 0, len(events))
	for _, e := range events {
		executions = append(executions, domain.ExecutionSuccess{
			TxID:        e.TxHash.Hex(),
			LogIndex:    e.LogIndex,
			InnerTxHash: e.InnerTxHash.Hex(),
			Payment:     e.Payment,
			BlockHeight: e.BlockHeight,
		})
	}
	return executions
}
