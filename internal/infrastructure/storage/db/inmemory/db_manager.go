package inmemory

import (
	"sync"

	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/internal/core/ports"
)

type depositInmemoryStore struct {
	deposits map[domain.DepositKey]domain.Deposit
	locker   *sync.RWMutex
}

type withdrawalInmemoryStore struct {
	withdrawals map[domain.WithdrawalKey]domain.Withdrawal
	locker      *sync.RWMutex
}

type executionInmemoryStore struct {
	executions map[domain.ExecutionKey]domain.ExecutionSuccess
	locker     *sync.RWMutex
}

// DbManager holds all the in-memory stores in a single data structure.
type DbManager struct {
	depositStore    *depositInmemoryStore
	withdrawalStore *withdrawalInmemoryStore
	executionStore  *executionInmemoryStore
}

// NewDbManager returns a DbManager with empty stores.
func NewDbManager() *DbManager {
	return &DbManager{
		depositStore: &depositInmemoryStore{
			deposits: map[domain.DepositKey]domain.Deposit{},
			locker:   &sync.RWMutex{},
		},
		withdrawalStore: &withdrawalInmemoryStore{
			withdrawals: map[domain.WithdrawalKey]domain.Withdrawal{},
			locker:      &sync.RWMutex{},
		},
		executionStore: &executionInmemoryStore{
			executions: map[domain.ExecutionKey]domain.ExecutionSuccess{},
			locker:     &sync.RWMutex{},
		},
	}
}

func (d *DbManager) DepositRepository() domain.DepositRepository {
	return NewDepositRepositoryImpl(d.depositStore)
}

func (d *DbManager) WithdrawalRepository() domain.WithdrawalRepository {
	return NewWithdrawalRepositoryImpl(d.withdrawalStore)
}

func (d *DbManager) ExecutionRepository() domain.ExecutionRepository {
	return NewExecutionRepositoryImpl(d.executionStore)
}

func (d *DbManager) Close() error {
	return nil
}

var _ ports.DbManager = (*DbManager)(nil)
