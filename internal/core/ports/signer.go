package ports

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxSigner is the signing capability used to authorize the outer ledger
// transactions that carry contract calls. Key material stays behind the
// implementation, the core never sees it.
type TxSigner interface {
	// Address returns the ledger address the capability signs for.
	Address() common.Address
	// SignTx returns the given transaction signed for the given chain.
	SignTx(
		ctx context.Context, chainID *big.Int, tx *types.Transaction,
	) (*types.Transaction, error)
}

// HashSigner is the signing capability of a single multisig owner. It signs
// the 32-byte digest of an encoded multisig transaction.
type HashSigner interface {
	// Address returns the owner address the produced signatures recover to.
	Address() common.Address
	// SignHash signs the given digest and returns the 65-byte r||s||v
	// signature with the recovery id already shifted to 27/28 as the
	// multisig contract expects.
	SignHash(ctx context.Context, hash [32]byte) ([]byte, error)
}
