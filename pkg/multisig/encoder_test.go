package multisig

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAccount = common.HexToAddress("0x5bf56b80c3ae42bd318ad464f062bcb50205b303")
	testTarget  = common.HexToAddress("0x2791bca1f2de4661ed88a30c99a7a9449aa84174")
)

func TestTypehashesMatchTypeStrings(t *testing.T) {
	assert.Equal(
		t,
		crypto.Keccak256Hash(
			[]byte("EIP712Domain(address verifyingContract)"),
		),
		domainSeparatorTypehash,
	)
	assert.Equal(
		t,
		crypto.Keccak256Hash(
			[]byte("SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)"),
		),
		safeTxTypehash,
	)
}

// pad32 left-pads b to a 32-byte word.
func pad32(b []byte) []byte {
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	return padded
}

func TestTransactionHashMatchesContractFormula(t *testing.T) {
	encoder := NewEncoder(testAccount)

	value := big.NewInt(42)
	data := []byte{0xca, 0xfe}
	nonce := uint64(7)

	// the expected bytes are rebuilt word by word from the contract's
	// hashing formula, without the abi package the encoder packs with.
	domainSeparator := crypto.Keccak256(append(
		domainSeparatorTypehash.Bytes(), pad32(testAccount.Bytes())...,
	))

	words := [][]byte{
		safeTxTypehash.Bytes(),
		pad32(testTarget.Bytes()),
		pad32(value.Bytes()),
		crypto.Keccak256(data),
		pad32([]byte{byte(OperationCall)}),
		pad32(nil), // safeTxGas
		pad32(nil), // baseGas
		pad32(nil), // gasPrice
		pad32(nil), // gasToken
		pad32(nil), // refundReceiver
		pad32(new(big.Int).SetUint64(nonce).Bytes()),
	}
	safeTxPreimage := []byte{}
	for _, word := range words {
		safeTxPreimage = append(safeTxPreimage, word...)
	}

	expected := append([]byte{0x19, 0x01}, domainSeparator...)
	expected = append(expected, crypto.Keccak256(safeTxPreimage)...)

	enc, err := encoder.EncodeTransactionData(
		testTarget, value, data, OperationCall, nonce,
	)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, expected, enc)

	hash, err := encoder.TransactionHash(
		testTarget, value, data, OperationCall, nonce,
	)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, crypto.Keccak256Hash(expected), hash)
}

func TestEncodeTransactionData(t *testing.T) {
	encoder := NewEncoder(testAccount)

	enc, err := encoder.EncodeTransactionData(
		testTarget, big.NewInt(42), []byte{0xca, 0xfe}, OperationCall, 7,
	)
	if err != nil {
		t.Fatal(err)
	}

	// 0x19 0x01 || domainSeparator || keccak256(packed fields)
	require.Len(t, enc, 66)
	assert.Equal(t, byte(0x19), enc[0])
	assert.Equal(t, byte(0x01), enc[1])
	assert.Equal(t, encoder.DomainSeparator().Bytes(), enc[2:34])
}

func TestEncodeTransactionDataIsDeterministic(t *testing.T) {
	encoder := NewEncoder(testAccount)

	first, err := encoder.EncodeTransactionData(
		testTarget, big.NewInt(1), []byte{0x01}, OperationCall, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	second, err := encoder.EncodeTransactionData(
		testTarget, big.NewInt(1), []byte{0x01}, OperationCall, 0,
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, first, second)
}

func TestTransactionHashCoversEveryField(t *testing.T) {
	encoder := NewEncoder(testAccount)

	base, err := encoder.TransactionHash(
		testTarget, big.NewInt(10), []byte{0x01, 0x02}, OperationCall, 3,
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		hash func() (common.Hash, error)
	}{
		{
			name: "different target",
			hash: func() (common.Hash, error) {
				return encoder.TransactionHash(
					common.HexToAddress("0x01"), big.NewInt(10),
					[]byte{0x01, 0x02}, OperationCall, 3,
				)
			},
		},
		{
			name: "different value",
			hash: func() (common.Hash, error) {
				return encoder.TransactionHash(
					testTarget, big.NewInt(11), []byte{0x01, 0x02},
					OperationCall, 3,
				)
			},
		},
		{
			name: "different payload",
			hash: func() (common.Hash, error) {
				return encoder.TransactionHash(
					testTarget, big.NewInt(10), []byte{0x01, 0x03},
					OperationCall, 3,
				)
			},
		},
		{
			name: "different nonce",
			hash: func() (common.Hash, error) {
				return encoder.TransactionHash(
					testTarget, big.NewInt(10), []byte{0x01, 0x02},
					OperationCall, 4,
				)
			},
		},
		{
			name: "different account",
			hash: func() (common.Hash, error) {
				other := NewEncoder(testTarget)
				return other.TransactionHash(
					testTarget, big.NewInt(10), []byte{0x01, 0x02},
					OperationCall, 3,
				)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			hash, err := tt.hash()
			if err != nil {
				t.Fatal(err)
			}
			assert.NotEqual(t, base, hash)
		})
	}
}

func TestNilValueEncodesAsZero(t *testing.T) {
	encoder := NewEncoder(testAccount)

	withNil, err := encoder.TransactionHash(
		testTarget, nil, []byte{0x01}, OperationCall, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	withZero, err := encoder.TransactionHash(
		testTarget, big.NewInt(0), []byte{0x01}, OperationCall, 0,
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, withZero, withNil)
}

func TestEncodeRejectsDelegateCall(t *testing.T) {
	encoder := NewEncoder(testAccount)

	_, err := encoder.EncodeTransactionData(
		testTarget, nil, nil, OperationDelegateCall, 0,
	)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = encoder.TransactionHash(
		testTarget, nil, nil, OperationDelegateCall, 0,
	)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestDomainSeparatorIsAccountBound(t *testing.T) {
	assert.NotEqual(
		t,
		NewEncoder(testAccount).DomainSeparator(),
		NewEncoder(testTarget).DomainSeparator(),
	)
}
