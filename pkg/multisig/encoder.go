package multisig

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Operation is the kind of call a multisig transaction performs.
type Operation uint8

const (
	// OperationCall is a plain call, the only kind the bridge produces.
	OperationCall Operation = 0
	// OperationDelegateCall exists in the contract ABI but is rejected by
	// the encoder.
	OperationDelegateCall Operation = 1
)

var (
	// keccak256("EIP712Domain(address verifyingContract)")
	domainSeparatorTypehash = common.HexToHash(
		"0x035aff83d86937d35b32e04f0ddc6ff469290eef2f1b692d8a815c89404d4749",
	)
	// keccak256("SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)")
	safeTxTypehash = common.HexToHash(
		"0xbb8310d486368db6bd6f849402fdd73ad53d316b5a4b2644ad6efe0f941286d8",
	)

	domainArgs abi.Arguments
	safeTxArgs abi.Arguments
)

func init() {
	bytes32Ty, _ := abi.NewType("bytes32", "", nil)
	addressTy, _ := abi.NewType("address", "", nil)
	uint256Ty, _ := abi.NewType("uint256", "", nil)
	uint8Ty, _ := abi.NewType("uint8", "", nil)

	domainArgs = abi.Arguments{
		{Type: bytes32Ty}, {Type: addressTy},
	}
	safeTxArgs = abi.Arguments{
		{Type: bytes32Ty}, // typehash
		{Type: addressTy}, // to
		{Type: uint256Ty}, // value
		{Type: bytes32Ty}, // keccak256(data)
		{Type: uint8Ty},   // operation
		{Type: uint256Ty}, // safeTxGas
		{Type: uint256Ty}, // baseGas
		{Type: uint256Ty}, // gasPrice
		{Type: addressTy}, // gasToken
		{Type: addressTy}, // refundReceiver
		{Type: uint256Ty}, // nonce
	}
}

// Encoder builds the canonical byte encoding of proposed transactions for one
// multisig account, bit-for-bit identical to the encoding the contract hashes
// when executing them. The gas-refund related fields are always zeroed: they
// are required for hash compatibility but unused by the bridge.
type Encoder struct {
	account common.Address
}

// NewEncoder returns an Encoder bound to the given multisig account address.
// The address is part of the domain separator, so encodings produced for
// different accounts never collide.
func NewEncoder(account common.Address) *Encoder {
	return &Encoder{account: account}
}

// Account returns the multisig account the encoder is bound to.
func (e *Encoder) Account() common.Address {
	return e.account
}

// DomainSeparator returns the EIP-712 domain separator of the multisig
// account.
func (e *Encoder) DomainSeparator() common.Hash {
	enc, err := domainArgs.Pack(domainSeparatorTypehash, e.account)
	if err != nil {
		// static arguments over fixed types cannot fail to pack.
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}

// EncodeTransactionData returns the exact preimage the contract hashes for a
// transaction with the given target, native value, call payload and counter
// value: 0x19 0x01 || domainSeparator || keccak256(packed safe tx fields).
// A change to any field, including the nonce, yields a different encoding.
func (e *Encoder) EncodeTransactionData(
	to common.Address, value *big.Int, data []byte, op Operation, nonce uint64,
) ([]byte, error) {
	if op != OperationCall {
		return nil, ErrUnsupportedOperation
	}
	if value == nil {
		value = new(big.Int)
	}

	zero := new(big.Int)
	zeroAddress := common.Address{}
	enc, err := safeTxArgs.Pack(
		safeTxTypehash,
		to,
		value,
		crypto.Keccak256Hash(data),
		uint8(op),
		zero,
		zero,
		zero,
		zeroAddress,
		zeroAddress,
		new(big.Int).SetUint64(nonce),
	)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction fields: %w", err)
	}

	domainSeparator := e.DomainSeparator()
	safeTxHash := crypto.Keccak256(enc)

	buf := make([]byte, 0, 2+len(domainSeparator)+len(safeTxHash))
	buf = append(buf, 0x19, 0x01)
	buf = append(buf, domainSeparator.Bytes()...)
	buf = append(buf, safeTxHash...)
	return buf, nil
}

// TransactionHash returns the digest the owners sign, ie. the keccak256 of
// the encoded transaction data.
func (e *Encoder) TransactionHash(
	to common.Address, value *big.Int, data []byte, op Operation, nonce uint64,
) (common.Hash, error) {
	enc, err := e.EncodeTransactionData(to, value, data, op, nonce)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}
