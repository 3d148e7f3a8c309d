package dbbadger

import (
	"context"

	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type executionRepositoryImpl struct {
	store *badgerhold.Store
}

// NewExecutionRepositoryImpl initialize a badger implementation of the domain.ExecutionRepository
func NewExecutionRepositoryImpl(store *badgerhold.Store) domain.ExecutionRepository {
	return executionRepositoryImpl{store}
}

func (e executionRepositoryImpl) AddExecutions(
	ctx context.Context, executions []domain.ExecutionSuccess,
) (int, error) {
	count := 0
	for _, execution := range executions {
		done, err := e.insertExecution(execution)
		if err != nil {
			return -1, err
		}
		if done {
			count++
		}
	}
	return count, nil
}

func (e executionRepositoryImpl) GetExecutionByInnerTxHash(
	ctx context.Context, innerTxHash string,
) (*domain.ExecutionSuccess, error) {
	query := badgerhold.Where("InnerTxHash").Eq(innerTxHash)

	var executions []domain.ExecutionSuccess
	if err := e.store.Find(&executions, query); err != nil {
		return nil, err
	}
	if len(executions) == 0 {
		return nil, nil
	}
	return &executions[0], nil
}

func (e executionRepositoryImpl) GetAllExecutions(
	ctx context.Context, page *domain.Page,
) ([]domain.ExecutionSuccess, error) {
	query := &badgerhold.Query{}
	query.SortBy("BlockHeight", "TxID", "LogIndex")
	if page != nil {
		from := page.Number*page.Size - page.Size
		query.Skip(from).Limit(page.Size)
	}

	var executions []domain.ExecutionSuccess
	if err := e.store.Find(&executions, query); err != nil {
		return nil, err
	}
	if executions == nil {
		executions = []domain.ExecutionSuccess{}
	}
	return executions, nil
}

func (e executionRepositoryImpl) insertExecution(
	execution domain.ExecutionSuccess,
) (bool, error) {
	if err := e.store.Insert(execution.Key(), &execution); err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
