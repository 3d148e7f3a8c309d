package inmemory

import (
	"context"
	"sort"

	"github.com/tidelabs/tideth/internal/core/domain"
)

type DepositRepositoryImpl struct {
	store *depositInmemoryStore
}

// NewDepositRepositoryImpl returns a new empty DepositRepositoryImpl
func NewDepositRepositoryImpl(
	store *depositInmemoryStore,
) domain.DepositRepository {
	return &DepositRepositoryImpl{store}
}

func (d DepositRepositoryImpl) AddDeposits(
	ctx context.Context, deposits []domain.Deposit,
) (int, error) {
	d.store.locker.Lock()
	defer d.store.locker.Unlock()

	count := 0
	for _, deposit := range deposits {
		if _, ok := d.store.deposits[deposit.Key()]; ok {
			continue
		}
		d.store.deposits[deposit.Key()] = deposit
		count++
	}
	return count, nil
}

func (d DepositRepositoryImpl) GetDepositsForAccount(
	ctx context.Context, account string, page *domain.Page,
) ([]domain.Deposit, error) {
	return d.find(func(dep domain.Deposit) bool {
		return dep.Account == account
	}, page), nil
}

func (d DepositRepositoryImpl) GetDepositsForAsset(
	ctx context.Context, asset string, page *domain.Page,
) ([]domain.Deposit, error) {
	return d.find(func(dep domain.Deposit) bool {
		return dep.Asset == asset
	}, page), nil
}

func (d DepositRepositoryImpl) GetAllDeposits(
	ctx context.Context, page *domain.Page,
) ([]domain.Deposit, error) {
	return d.find(func(domain.Deposit) bool { return true }, page), nil
}

func (d DepositRepositoryImpl) find(
	match func(domain.Deposit) bool, page *domain.Page,
) []domain.Deposit {
	d.store.locker.RLock()
	defer d.store.locker.RUnlock()

	result := make([]domain.Deposit, 0)
	for _, v := range d.store.deposits {
		if match(v) {
			result = append(result, v)
		}
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
		return result
	}
	startIndex := page.Number*page.Size - page.Size
	if startIndex >= len(result) {
		return []domain.Deposit{}
	}
	endIndex := startIndex + page.Size
	if endIndex > len(result) {
		endIndex = len(result)
	}
	return result[startIndex:endIndex]
}
