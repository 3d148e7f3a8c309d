package application

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/internal/infrastructure/storage/db/inmemory"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
)

type fakeLedger struct {
	ledgerclient.Service
	height uint64
}

func (f *fakeLedger) BlockNumber(ctx context.Context) (uint64, error) {
	return f.height, nil
}

func newHistoryFixture(t *testing.T, height uint64) (HistoryService, *inmemory.DbManager) {
	dbManager := inmemory.NewDbManager()
	svc := NewHistoryService(
		&fakeLedger{height: height},
		dbManager.DepositRepository(),
		dbManager.WithdrawalRepository(),
		dbManager.ExecutionRepository(),
	)
	return svc, dbManager
}

func TestListDepositsRecomputesConfirmations(t *testing.T) {
	svc, dbManager := newHistoryFixture(t, 110)
	ctx := context.Background()

	account := "0x" + strings.Repeat("ab", 32)
	_, err := dbManager.DepositRepository().AddDeposits(ctx, []domain.Deposit{
		{
			TxID: "0xaa", LogIndex: 0, Account: account, Asset: "0x01",
			Amount: big.NewInt(10), BlockHeight: 100,
		},
		{
			TxID: "0xbb", LogIndex: 0, Account: account, Asset: "0x01",
			Amount: big.NewInt(20), BlockHeight: 120,
		},
	})
	require.NoError(t, err)

	deposits, err := svc.ListDeposits(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, deposits, 2)
	assert.Equal(t, uint64(10), deposits[0].Confirmations)
	// sampled height lags behind the record, depth clamps to zero.
	assert.Equal(t, uint64(0), deposits[1].Confirmations)
}

func TestListDepositsForAccountNormalizesInput(t *testing.T) {
	svc, dbManager := newHistoryFixture(t, 10)
	ctx := context.Background()

	account := "0x" + strings.Repeat("ab", 32)
	_, err := dbManager.DepositRepository().AddDeposits(ctx, []domain.Deposit{
		{
			TxID: "0xaa", LogIndex: 0, Account: account, Asset: "0x01",
			Amount: big.NewInt(10), BlockHeight: 5,
		},
	})
	require.NoError(t, err)

	deposits, err := svc.ListDepositsForAccount(
		ctx, "0x"+strings.Repeat("AB", 32), nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, deposits, 1)

	_, err = svc.ListDepositsForAccount(ctx, "not-an-account", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestListWithdrawalsForAssetRejectsInvalidInput(t *testing.T) {
	svc, _ := newHistoryFixture(t, 10)

	_, err := svc.ListWithdrawalsForAsset(context.Background(), "0x123", nil)
	assert.ErrorIs(t, err, ErrInvalidAsset)
}

func TestGetExecutionByInnerTxHash(t *testing.T) {
	svc, dbManager := newHistoryFixture(t, 50)
	ctx := context.Background()

	innerTxHash := "0x" + strings.Repeat("0", 63) + "5"
	_, err := dbManager.ExecutionRepository().AddExecutions(
		ctx, []domain.ExecutionSuccess{{
			TxID: "0xaa", LogIndex: 0,
			InnerTxHash: "0x" + strings.Repeat("0", 63) + "5",
			Payment:     big.NewInt(0), BlockHeight: 40,
		}},
	)
	require.NoError(t, err)

	execution, err := svc.GetExecutionByInnerTxHash(ctx, innerTxHash)
	if err != nil {
		t.Fatal(err)
	}
	require.NotNil(t, execution)
	assert.Equal(t, uint64(10), execution.Confirmations)

	missing, err := svc.GetExecutionByInnerTxHash(
		ctx, "0x"+strings.Repeat("0", 63)+"6",
	)
	if err != nil {
		t.Fatal(err)
	}
	assert.Nil(t, missing)
}
