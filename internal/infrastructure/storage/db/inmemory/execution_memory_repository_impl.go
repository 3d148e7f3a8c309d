package inmemory

import (
	"context"
	"sort"

	"github.com/tidelabs/tideth/internal/core/domain"
)

type ExecutionRepositoryImpl struct {
	store *executionInmemoryStore
}

// NewExecutionRepositoryImpl returns a new empty ExecutionRepositoryImpl
func NewExecutionRepositoryImpl(
	store *executionInmemoryStore,
) domain.ExecutionRepository {
	return &ExecutionRepositoryImpl{store}
}

func (e ExecutionRepositoryImpl) AddExecutions(
	ctx context.Context, executions []domain.ExecutionSuccess,
) (int, error) {
	e.store.locker.Lock()
	defer e.store.locker.Unlock()

	count := 0
	for _, execution := range executions {
		if _, ok := e.store.executions[execution.Key()]; ok {
			continue
		}
		e.store.executions[execution.Key()] = execution
		count++
	}
	return count, nil
}

func (e ExecutionRepositoryImpl) GetExecutionByInnerTxHash(
	ctx context.Context, innerTxHash string,
) (*domain.ExecutionSuccess, error) {
	e.store.locker.RLock()
	defer e.store.locker.RUnlock()

	for _, v := range e.store.executions {
		if v.InnerTxHash == innerTxHash {
			execution := v
			return &execution, nil
		}
	}
	return nil, nil
}

func (e ExecutionRepositoryImpl) GetAllExecutions(
	ctx context.Context, page *domain.Page,
) ([]domain.ExecutionSuccess, error) {
	e.store.locker.RLock()
	defer e.store.locker.RUnlock()

	result := make([]domain.ExecutionSuccess, 0, len(e.store.executions))
	for _, v := range e.store.executions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BlockHeight != result[j].BlockHeight {
			return result[i].BlockHeight < result[j].BlockHeight
		}
		if result[i].TxID != result[j].TxID {
			return result[i].TxID < result[j].TxID
		}
		return result[i].LogIndex < result[j].LogIndex
	})

	if page == nil {
		return result, nil
	}
	startIndex := page.Number*page.Size - page.Size
	if startIndex >= len(result) {
		return []domain.ExecutionSuccess{}, nil
	}
	endIndex := startIndex + page.Size
	if endIndex > len(result) {
		endIndex = len(result)
	}
	return result[startIndex:endIndex], nil
}
