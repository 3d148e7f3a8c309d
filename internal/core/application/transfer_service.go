package application

import (
	"bytes"
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"
	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/internal/core/ports"
	"github.com/tidelabs/tideth/pkg/erc20"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
	"github.com/tidelabs/tideth/pkg/multisig"
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/tidelabs/tideth/pkg/safeclient"
)

// TransferService moves assets through the Router and the multisig account.
// Deposits are plain submissions, while withdrawals and administrative calls
// go through the full multisig proposal flow: encode, collect owner
// signatures, aggregate and execute.
type TransferService interface {
	// DepositNative deposits the given native asset amount credited to the
	// given 32-byte destination account.
	DepositNative(
		ctx context.Context, account [32]byte, amount *big.Int,
	) (common.Hash, error)
	// DepositToken deposits the given token amount credited to the given
	// 32-byte destination account. The Router must have an allowance
	// covering the amount.
	DepositToken(
		ctx context.Context, account [32]byte, asset common.Address,
		amount *big.Int,
	) (common.Hash, error)
	// Withdraw executes a Router withdrawal of the given asset amount to the
	// given address through the multisig account. The zero asset address
	// withdraws the native asset.
	Withdraw(
		ctx context.Context, to, asset common.Address, amount *big.Int,
	) (common.Hash, error)
	// TransferToken pays out the given token amount held directly by the
	// multisig account, bypassing the Router.
	TransferToken(
		ctx context.Context, asset, to common.Address, amount *big.Int,
	) (common.Hash, error)
	// ClaimRouterOwnership completes a pending Router ownership transfer
	// towards the multisig account.
	ClaimRouterOwnership(ctx context.Context) (common.Hash, error)
	// AcceptToken accept-lists the given asset on the Router through the
	// multisig account.
	AcceptToken(ctx context.Context, asset common.Address) (common.Hash, error)
	// RemoveToken removes the given asset from the Router's accept-list
	// through the multisig account.
	RemoveToken(ctx context.Context, asset common.Address) (common.Hash, error)
	// Balance returns the given holder's balance of the given asset, the
	// native one when the asset is the zero address.
	Balance(
		ctx context.Context, asset, holder common.Address,
	) (*big.Int, error)
}

type transferService struct {
	svc       ledgerclient.Service
	routerSvc *routerclient.Client
	safeSvc   *safeclient.Client
	encoder   *multisig.Encoder
	sequencer *multisig.Sequencer
	signers   []ports.HashSigner
}

// NewTransferService returns a TransferService executing multisig operations
// with the given owner signers. The signers must be (a subset of) the owner
// set of the multisig account, at least as many as its threshold.
func NewTransferService(
	svc ledgerclient.Service,
	routerSvc *routerclient.Client,
	safeSvc *safeclient.Client,
	signers []ports.HashSigner,
) TransferService {
	sequencer := multisig.NewSequencer(
		func(ctx context.Context, _ common.Address) (uint64, error) {
			return safeSvc.Nonce(ctx)
		},
	)
	return &transferService{
		svc:       svc,
		routerSvc: routerSvc,
		safeSvc:   safeSvc,
		encoder:   multisig.NewEncoder(safeSvc.Address()),
		sequencer: sequencer,
		signers:   signers,
	}
}

func (t *transferService) DepositNative(
	ctx context.Context, account [32]byte, amount *big.Int,
) (common.Hash, error) {
	if amount == nil {
		return common.Hash{}, domain.ErrInvalidAmount
	}
	txHash, _, err := t.routerSvc.Deposit(
		ctx, account, common.Address{}, amount, amount,
	)
	return txHash, err
}

func (t *transferService) DepositToken(
	ctx context.Context, account [32]byte, asset common.Address,
	amount *big.Int,
) (common.Hash, error) {
	if amount == nil {
		return common.Hash{}, domain.ErrInvalidAmount
	}
	txHash, _, err := t.routerSvc.Deposit(ctx, account, asset, amount, nil)
	return txHash, err
}

func (t *transferService) Withdraw(
	ctx context.Context, to, asset common.Address, amount *big.Int,
) (common.Hash, error) {
	if amount == nil {
		return common.Hash{}, domain.ErrInvalidAmount
	}
	data, err := t.routerSvc.WithdrawalData(to, asset, amount)
	if err != nil {
		return common.Hash{}, err
	}
	return t.execViaAccount(ctx, t.routerSvc.Address(), data)
}

func (t *transferService) TransferToken(
	ctx context.Context, asset, to common.Address, amount *big.Int,
) (common.Hash, error) {
	if amount == nil {
		return common.Hash{}, domain.ErrInvalidAmount
	}
	data, err := erc20.TransferData(to, amount)
	if err != nil {
		return common.Hash{}, err
	}
	return t.execViaAccount(ctx, asset, data)
}

func (t *transferService) ClaimRouterOwnership(
	ctx context.Context,
) (common.Hash, error) {
	data, err := t.routerSvc.ClaimOwnershipData()
	if err != nil {
		return common.Hash{}, err
	}
	return t.execViaAccount(ctx, t.routerSvc.Address(), data)
}

func (t *transferService) AcceptToken(
	ctx context.Context, asset common.Address,
) (common.Hash, error) {
	data, err := t.routerSvc.AcceptTokenData(asset)
	if err != nil {
		return common.Hash{}, err
	}
	return t.execViaAccount(ctx, t.routerSvc.Address(), data)
}

func (t *transferService) RemoveToken(
	ctx context.Context, asset common.Address,
) (common.Hash, error) {
	data, err := t.routerSvc.RemoveTokenData(asset)
	if err != nil {
		return common.Hash{}, err
	}
	return t.execViaAccount(ctx, t.routerSvc.Address(), data)
}

func (t *transferService) Balance(
	ctx context.Context, asset, holder common.Address,
) (*big.Int, error) {
	if asset == (common.Address{}) {
		return t.svc.Balance(ctx, holder)
	}
	return erc20.BalanceOf(ctx, t.svc, asset, holder)
}

// execViaAccount runs the full multisig execution flow for a call towards the
// given target. Proposal construction and submission are serialized per
// account by the sequencer, and the nonce mirror only advances on success.
// On a confirmation timeout the execution may still land later, so the mirror
// is dropped and the stored executions should be reconciled before retrying.
func (t *transferService) execViaAccount(
	ctx context.Context, to common.Address, data []byte,
) (common.Hash, error) {
	account := t.safeSvc.Address()

	threshold, err := t.safeSvc.GetThreshold(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	var txHash common.Hash
	err = t.sequencer.Do(ctx, account, func(nonce uint64) error {
		encoded, err := t.encoder.EncodeTransactionData(
			to, nil, data, multisig.OperationCall, nonce,
		)
		if err != nil {
			return err
		}
		remote, err := t.safeSvc.EncodeTransactionData(ctx, to, nil, data, nonce)
		if err != nil {
			return err
		}
		if !bytes.Equal(encoded, remote) {
			return ErrEncodingMismatch
		}

		digest := crypto.Keccak256Hash(encoded)
		sigs := make([]multisig.SignedBy, 0, len(t.signers))
		for _, signer := range t.signers {
			raw, err := signer.SignHash(ctx, digest)
			if err != nil {
				return err
			}
			sig, err := multisig.ParseSignature(raw)
			if err != nil {
				return err
			}
			sigs = append(sigs, multisig.SignedBy{
				Signer:    signer.Address(),
				Signature: sig,
			})
		}
		blob, err := multisig.Aggregate(int(threshold), sigs)
		if err != nil {
			return err
		}

		hash, gasUsed, err := t.safeSvc.Exec(ctx, to, nil, data, blob, 0)
		if err != nil {
			return err
		}
		log.Debugf(
			"multisig execution %s confirmed with nonce %d, gas used %d",
			hash, nonce, gasUsed,
		)
		txHash = hash
		return nil
	})
	if err != nil {
		var timeoutErr *ledgerclient.ConfirmationTimeoutError
		if errors.As(err, &timeoutErr) {
			// the counter may or may not have advanced on-chain.
			t.sequencer.Reset(account)
		}
		return common.Hash{}, err
	}
	return txHash, nil
}
