package safeclient

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExecutionSuccess(t *testing.T) {
	innerTxHash := common.HexToHash("0xfeed")
	data, err := safeABI.Events["ExecutionSuccess"].Inputs.Pack(
		[32]byte(innerTxHash), big.NewInt(0),
	)
	require.NoError(t, err)

	client := &Client{}
	event, err := client.parseExecutionSuccess(types.Log{
		Data:        data,
		TxHash:      common.HexToHash("0xdead"),
		Index:       2,
		BlockNumber: 99,
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, innerTxHash, event.InnerTxHash)
	assert.Equal(t, big.NewInt(0), event.Payment)
	assert.Equal(t, common.HexToHash("0xdead"), event.TxHash)
	assert.Equal(t, uint(2), event.LogIndex)
	assert.Equal(t, uint64(99), event.BlockHeight)
}

func TestParseExecutionSuccessRejectsTruncatedData(t *testing.T) {
	client := &Client{}
	_, err := client.parseExecutionSuccess(types.Log{Data: []byte{0x01}})
	assert.Error(t, err)
}
