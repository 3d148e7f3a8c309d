package inmemory

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidelabs/tideth/internal/core/domain"
)

func newExecution(txid string, logIndex uint, innerTxHash string, height uint64) domain.ExecutionSuccess {
	return domain.ExecutionSuccess{
		TxID:        txid,
		LogIndex:    logIndex,
		InnerTxHash: innerTxHash,
		Payment:     big.NewInt(0),
		BlockHeight: height,
	}
}

func TestAddExecutionsSkipsDuplicates(t *testing.T) {
	repo := NewDbManager().ExecutionRepository()

	count, err := repo.AddExecutions(ctx, []domain.ExecutionSuccess{
		newExecution("0xaa", 0, "0xf1", 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, count)

	count, err = repo.AddExecutions(ctx, []domain.ExecutionSuccess{
		newExecution("0xaa", 0, "0xf1", 1),
		newExecution("0xbb", 0, "0xf2", 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, count)
}

func TestGetExecutionByInnerTxHash(t *testing.T) {
	repo := NewDbManager().ExecutionRepository()

	_, err := repo.AddExecutions(ctx, []domain.ExecutionSuccess{
		newExecution("0xaa", 0, "0xf1", 1),
		newExecution("0xbb", 0, "0xf2", 2),
	})
	require.NoError(t, err)

	execution, err := repo.GetExecutionByInnerTxHash(ctx, "0xf2")
	if err != nil {
		t.Fatal(err)
	}
	require.NotNil(t, execution)
	assert.Equal(t, "0xbb", execution.TxID)

	missing, err := repo.GetExecutionByInnerTxHash(ctx, "0xf3")
	if err != nil {
		t.Fatal(err)
	}
	assert.Nil(t, missing)
}

func TestGetAllExecutionsOrdersAndPaginates(t *testing.T) {
	repo := NewDbManager().ExecutionRepository()

	_, err := repo.AddExecutions(ctx, []domain.ExecutionSuccess{
		newExecution("0xcc", 0, "0xf3", 30),
		newExecution("0xaa", 0, "0xf1", 10),
		newExecution("0xbb", 0, "0xf2", 20),
	})
	require.NoError(t, err)

	executions, err := repo.GetAllExecutions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, executions, 3)
	assert.Equal(t, uint64(10), executions[0].BlockHeight)
	assert.Equal(t, uint64(30), executions[2].BlockHeight)

	page, err := repo.GetAllExecutions(ctx, &domain.Page{Number: 2, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, page, 1)
	assert.Equal(t, "0xcc", page[0].TxID)
}
