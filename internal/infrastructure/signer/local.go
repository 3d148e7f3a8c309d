// Package signer provides an in-process signing capability backed by a plain
// ECDSA private key. Key material never leaves the package.
package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tidelabs/tideth/internal/core/ports"
)

// Local signs with a private key held in memory. It implements both the
// ledger transaction and the multisig owner signing capabilities.
type Local struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewLocalFromHex returns a Local backed by the given hex encoded private
// key, with or without 0x prefix.
func NewLocalFromHex(hexKey string) (*Local, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, err
	}
	return NewLocal(key), nil
}

// NewLocal returns a Local backed by the given private key.
func NewLocal(key *ecdsa.PrivateKey) *Local {
	return &Local{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the address the capability signs for.
func (l *Local) Address() common.Address {
	return l.address
}

// SignTx returns the given transaction signed for the given chain.
func (l *Local) SignTx(
	ctx context.Context, chainID *big.Int, tx *types.Transaction,
) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), l.key)
}

// SignHash signs the given digest and returns the 65-byte r||s||v signature
// with the recovery id shifted to 27/28 as the multisig contract expects.
func (l *Local) SignHash(ctx context.Context, hash [32]byte) ([]byte, error) {
	sig, err := crypto.Sign(hash[:], l.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

var (
	_ ports.TxSigner   = (*Local)(nil)
	_ ports.HashSigner = (*Local)(nil)
)
