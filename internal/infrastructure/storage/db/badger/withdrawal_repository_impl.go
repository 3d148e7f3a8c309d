package dbbadger

import (
	"context"

	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type withdrawalRepositoryImpl struct {
	store *badgerhold.Store
}

// NewWithdrawalRepositoryImpl initialize a badger implementation of the domain.WithdrawalRepository
func NewWithdrawalRepositoryImpl(store *badgerhold.Store) domain.WithdrawalRepository {
	return withdrawalRepositoryImpl{store}
}

func (w withdrawalRepositoryImpl) AddWithdrawals(
	ctx context.Context, withdrawals []domain.Withdrawal,
) (int, error) {
	count := 0
	for _, withdrawal := range withdrawals {
		done, err := w.insertWithdrawal(withdrawal)
		if err != nil {
			return -1, err
		}
		if done {
			count++
		}
	}
	return count, nil
}

func (w withdrawalRepositoryImpl) GetWithdrawalsForAccount(
	ctx context.Context, account string, page *domain.Page,
) ([]domain.Withdrawal, error) {
	query := badgerhold.Where("Account").Eq(account)
	return w.findWithdrawals(query, page)
}

func (w withdrawalRepositoryImpl) GetWithdrawalsForAsset(
	ctx context.Context, asset string, page *domain.Page,
) ([]domain.Withdrawal, error) {
	query := badgerhold.Where("Asset").Eq(asset)
	return w.findWithdrawals(query, page)
}

func (w withdrawalRepositoryImpl) GetAllWithdrawals(
	ctx context.Context, page *domain.Page,
) ([]domain.Withdrawal, error) {
	return w.findWithdrawals(&badgerhold.Query{}, page)
}

func (w withdrawalRepositoryImpl) insertWithdrawal(
	withdrawal domain.Withdrawal,
) (bool, error) {
	if err := w.store.Insert(withdrawal.Key(), &withdrawal); err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (w withdrawalRepositoryImpl) findWithdrawals(
	query *badgerhold.Query, page *domain.Page,
) ([]domain.Withdrawal, error) {
	query.SortBy("BlockHeight", "TxID", "LogIndex")
	if page != nil {
		from := page.Number*page.Size - page.Size
		query.Skip(from).Limit(page.Size)
	}

	var withdrawals []domain.Withdrawal
	if err := w.store.Find(&withdrawals, query); err != nil {
		return nil, err
	}
	if withdrawals == nil {
		withdrawals = []domain.Withdrawal{}
	}
	return withdrawals, nil
}
