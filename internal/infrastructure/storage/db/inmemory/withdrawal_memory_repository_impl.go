package inmemory

import (
	"context"
	"sort"

	"github.com/tidelabs/tideth/internal/core/domain"
)

type WithdrawalRepositoryImpl struct {
	store *withdrawalInmemoryStore
}

// NewWithdrawalRepositoryImpl returns a new empty WithdrawalRepositoryImpl
func NewWithdrawalRepositoryImpl(
	store *withdrawalInmemoryStore,
) domain.WithdrawalRepository {
	return &WithdrawalRepositoryImpl{store}
}

func (w WithdrawalRepositoryImpl) AddWithdrawals(
	ctx context.Context, withdrawals []domain.Withdrawal,
) (int, error) {
	w.store.locker.Lock()
	defer w.store.locker.Unlock()

	count := 0
	for _, withdrawal := range withdrawals {
		if _, ok := w.store.withdrawals[withdrawal.Key()]; ok {
			continue
		}
		w.store.withdrawals[withdrawal.Key()] = withdrawal
		count++
	}
	return count, nil
}

func (w WithdrawalRepositoryImpl) GetWithdrawalsForAccount(
	ctx context.Context, account string, page *domain.Page,
) ([]domain.Withdrawal, error) {
	return w.find(func(wit domain.Withdrawal) bool {
		return wit.Account == account
	}, page), nil
}

func (w WithdrawalRepositoryImpl) GetWithdrawalsForAsset(
	ctx context.Context, asset string, page *domain.Page,
) ([]domain.Withdrawal, error) {
	return w.find(func(wit domain.Withdrawal) bool {
		return wit.Asset == asset
	}, page), nil
}

func (w WithdrawalRepositoryImpl) GetAllWithdrawals(
	ctx context.Context, page *domain.Page,
) ([]domain.Withdrawal, error) {
	return w.find(func(domain.Withdrawal) bool { return true }, page), nil
}

func (w WithdrawalRepositoryImpl) find(
	match func(domain.Withdrawal) bool, page *domain.Page,
) []domain.Withdrawal {
	w.store.locker.RLock()
	defer w.store.locker.RUnlock()

	result := make([]domain.Withdrawal, 0)
	for _, v := range w.store.withdrawals {
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
		return []domain.Withdrawal{}
	}
	endIndex := startIndex + page.Size
	if endIndex > len(result) {
		endIndex = len(result)
	}
	return result[startIndex:endIndex]
}
