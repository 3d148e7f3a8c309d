package inmemory

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidelabs/tideth/internal/core/domain"
)

var ctx = context.Background()

func newDeposit(txid string, logIndex uint, account, asset string, height uint64) domain.Deposit {
	return domain.Deposit{
		TxID:        txid,
		LogIndex:    logIndex,
		Account:     account,
		Asset:       asset,
		Amount:      big.NewInt(100),
		BlockHeight: height,
	}
}

func TestAddDepositsSkipsDuplicates(t *testing.T) {
	repo := NewDbManager().DepositRepository()

	count, err := repo.AddDeposits(ctx, []domain.Deposit{
		newDeposit("0xaa", 0, "0x01", "0xt1", 1),
		newDeposit("0xaa", 1, "0x01", "0xt1", 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, count)

	// same tx, same log position: already stored.
	count, err = repo.AddDeposits(ctx, []domain.Deposit{
		newDeposit("0xaa", 0, "0x01", "0xt1", 1),
		newDeposit("0xaa", 2, "0x01", "0xt1", 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, count)

	deposits, err := repo.GetAllDeposits(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, deposits, 3)
}

func TestGetDepositsFiltersByAccountAndAsset(t *testing.T) {
	repo := NewDbManager().DepositRepository()

	_, err := repo.AddDeposits(ctx, []domain.Deposit{
		newDeposit("0xaa", 0, "0x01", "0xt1", 1),
		newDeposit("0xbb", 0, "0x02", "0xt1", 2),
		newDeposit("0xcc", 0, "0x01", "0xt2", 3),
	})
	require.NoError(t, err)

	byAccount, err := repo.GetDepositsForAccount(ctx, "0x01", nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, byAccount, 2)

	byAsset, err := repo.GetDepositsForAsset(ctx, "0xt1", nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, byAsset, 2)

	none, err := repo.GetDepositsForAccount(ctx, "0x03", nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, none)
}

func TestGetAllDepositsOrdersByHeight(t *testing.T) {
	repo := NewDbManager().DepositRepository()

	_, err := repo.AddDeposits(ctx, []domain.Deposit{
		newDeposit("0xcc", 0, "0x01", "0xt1", 30),
		newDeposit("0xaa", 1, "0x01", "0xt1", 10),
		newDeposit("0xaa", 0, "0x01", "0xt1", 10),
		newDeposit("0xbb", 0, "0x01", "0xt1", 20),
	})
	require.NoError(t, err)

	deposits, err := repo.GetAllDeposits(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, deposits, 4)
	assert.Equal(t, uint64(10), deposits[0].BlockHeight)
	assert.Equal(t, uint(0), deposits[0].LogIndex)
	assert.Equal(t, uint(1), deposits[1].LogIndex)
	assert.Equal(t, uint64(20), deposits[2].BlockHeight)
	assert.Equal(t, uint64(30), deposits[3].BlockHeight)
}

func TestGetAllDepositsPaginates(t *testing.T) {
	repo := NewDbManager().DepositRepository()

	for i := 0; i < 5; i++ {
		_, err := repo.AddDeposits(ctx, []domain.Deposit{
			newDeposit("0xaa", uint(i), "0x01", "0xt1", uint64(i)),
		})
		require.NoError(t, err)
	}

	page, err := repo.GetAllDeposits(ctx, &domain.Page{Number: 1, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, page, 2)
	assert.Equal(t, uint64(0), page[0].BlockHeight)

	page, err = repo.GetAllDeposits(ctx, &domain.Page{Number: 3, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, page, 1)
	assert.Equal(t, uint64(4), page[0].BlockHeight)

	page, err = repo.GetAllDeposits(ctx, &domain.Page{Number: 4, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, page)
}
