package routerclient

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAsset   = common.HexToAddress("0x2791bca1f2de4661ed88a30c99a7a9449aa84174")
	testTxHash  = common.HexToHash("0xdead")
	testAccount = common.HexToHash("0xbeef")
)

func depositLog(t *testing.T, amount *big.Int, topics []common.Hash) types.Log {
	data, err := routerABI.Events["Deposit"].Inputs.NonIndexed().Pack(amount)
	require.NoError(t, err)
	return types.Log{
		Topics:      topics,
		Data:        data,
		TxHash:      testTxHash,
		Index:       3,
		BlockNumber: 42,
	}
}

func TestParseDeposit(t *testing.T) {
	l := depositLog(t, big.NewInt(1000), []common.Hash{
		routerABI.Events["Deposit"].ID,
		testAccount,
		addressTopic(testAsset),
	})

	event, err := parseDeposit(l)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, big.NewInt(1000), event.Amount)
	assert.Equal(t, testAsset, event.Asset)
	assert.Equal(t, [32]byte(testAccount), event.Account)
	assert.Equal(t, testTxHash, event.TxHash)
	assert.Equal(t, uint(3), event.LogIndex)
	assert.Equal(t, uint64(42), event.BlockHeight)
}

func TestParseDepositRejectsMalformedLog(t *testing.T) {
	l := depositLog(t, big.NewInt(1), []common.Hash{
		routerABI.Events["Deposit"].ID,
		testAccount,
	})

	_, err := parseDeposit(l)
	assert.ErrorIs(t, err, ErrMalformedLog)
}

func TestParseDepositRejectsTruncatedData(t *testing.T) {
	l := depositLog(t, big.NewInt(1), []common.Hash{
		routerABI.Events["Deposit"].ID,
		testAccount,
		addressTopic(testAsset),
	})
	l.Data = l.Data[:16]

	_, err := parseDeposit(l)
	assert.Error(t, err)
}

func TestParseWithdraw(t *testing.T) {
	account := common.HexToAddress("0x8ba1f109551bd432803012645ac136ddd64dba72")
	data, err := routerABI.Events["Withdraw"].Inputs.NonIndexed().Pack(
		big.NewInt(500),
	)
	require.NoError(t, err)

	event, err := parseWithdraw(types.Log{
		Topics: []common.Hash{
			routerABI.Events["Withdraw"].ID,
			addressTopic(account),
			addressTopic(testAsset),
		},
		Data:        data,
		TxHash:      testTxHash,
		Index:       1,
		BlockNumber: 7,
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, big.NewInt(500), event.Amount)
	assert.Equal(t, account, event.Account)
	assert.Equal(t, testAsset, event.Asset)
}

func TestFilterTopics(t *testing.T) {
	eventID := routerABI.Events["Deposit"].ID
	account := testAccount
	asset := addressTopic(testAsset)

	tests := []struct {
		name     string
		account  *common.Hash
		asset    *common.Hash
		expected [][]common.Hash
	}{
		{
			name:     "no filters",
			expected: [][]common.Hash{{eventID}},
		},
		{
			name:     "by account",
			account:  &account,
			expected: [][]common.Hash{{eventID}, {account}},
		},
		{
			name:     "by asset",
			asset:    &asset,
			expected: [][]common.Hash{{eventID}, nil, {asset}},
		},
		{
			name:     "by account and asset",
			account:  &account,
			asset:    &asset,
			expected: [][]common.Hash{{eventID}, {account}, {asset}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filterTopics(eventID, tt.account, tt.asset))
		})
	}
}
