package dbbadger

import (
	"context"

	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type depositRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDepositRepositoryImpl initialize a badger implementation of the domain.DepositRepository
func NewDepositRepositoryImpl(store *badgerhold.Store) domain.DepositRepository {
	return depositRepositoryImpl{store}
}

func (d depositRepositoryImpl) AddDeposits(
	ctx context.Context, deposits []domain.Deposit,
) (int, error) {
	count := 0
	for _, deposit := range deposits {
		done, err := d.insertDeposit(deposit)
		if err != nil {
			return -1, err
		}
		if done {
			count++
		}
	}
	return count, nil
}

func (d depositRepositoryImpl) GetDepositsForAccount(
	ctx context.Context, account string, page *domain.Page,
) ([]domain.Deposit, error) {
	query := badgerhold.Where("Account").Eq(account)
	return d.findDeposits(query, page)
}

func (d depositRepositoryImpl) GetDepositsForAsset(
	ctx context.Context, asset string, page *domain.Page,
) ([]domain.Deposit, error) {
	query := badgerhold.Where("Asset").Eq(asset)
	return d.findDeposits(query, page)
}

func (d depositRepositoryImpl) GetAllDeposits(
	ctx context.Context, page *domain.Page,
) ([]domain.Deposit, error) {
	return d.findDeposits(&badgerhold.Query{}, page)
}

func (d depositRepositoryImpl) insertDeposit(
	deposit domain.Deposit,
) (bool, error) {
	if err := d.store.Insert(deposit.Key(), &deposit); err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d depositRepositoryImpl) findDeposits(
	query *badgerhold.Query, page *domain.Page,
) ([]domain.Deposit, error) {
	query.SortBy("BlockHeight", "TxID", "LogIndex")
	if page != nil {
		from := page.Number*page.Size - page.Size
		query.Skip(from).Limit(page.Size)
	}

	var deposits []domain.Deposit
	if err := d.store.Find(&deposits, query); err != nil {
		return nil, err
	}
	if deposits == nil {
		deposits = []domain.Deposit{}
	}
	return deposits, nil
}
