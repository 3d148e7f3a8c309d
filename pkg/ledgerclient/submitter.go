package ledgerclient

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
)

const (
	defaultConfirmationTimeout = 2 * time.Minute
	defaultPollingInterval     = time.Second
)

// TxSigner authorizes the outer ledger transactions built by a Submitter.
type TxSigner interface {
	Address() common.Address
	SignTx(
		ctx context.Context, chainID *big.Int, tx *types.Transaction,
	) (*types.Transaction, error)
}

// Submitter builds, signs and submits contract calls through a Service and
// waits for their inclusion.
type Submitter struct {
	svc                 Service
	signer              TxSigner
	chainID             *big.Int
	confirmationTimeout time.Duration
	pollingInterval     time.Duration
}

// SubmitterOpts defines the parameters needed for creating a Submitter with
// the NewSubmitter method. Zero durations fall back to defaults.
type SubmitterOpts struct {
	Service             Service
	Signer              TxSigner
	ConfirmationTimeout time.Duration
	PollingInterval     time.Duration
}

// NewSubmitter returns a Submitter bound to the chain served by the given
// Service.
func NewSubmitter(ctx context.Context, opts SubmitterOpts) (*Submitter, error) {
	chainID, err := opts.Service.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching chain id: %w", err)
	}

	confirmationTimeout := opts.ConfirmationTimeout
	if confirmationTimeout <= 0 {
		confirmationTimeout = defaultConfirmationTimeout
	}
	pollingInterval := opts.PollingInterval
	if pollingInterval <= 0 {
		pollingInterval = defaultPollingInterval
	}

	return &Submitter{
		svc:                 opts.Service,
		signer:              opts.Signer,
		chainID:             chainID,
		confirmationTimeout: confirmationTimeout,
		pollingInterval:     pollingInterval,
	}, nil
}

// ChainID returns the identifier of the chain the submitter signs for.
func (s *Submitter) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// From returns the address submissions are signed with.
func (s *Submitter) From() common.Address {
	return s.signer.Address()
}

// Submit signs and submits a call to the given target and blocks until its
// inclusion. A gasLimit of zero delegates the estimation to the endpoint.
// If the transaction is not included within the confirmation timeout, the
// returned error is a *ConfirmationTimeoutError carrying the tx hash: the
// submission may still succeed later, callers must reconcile through the
// event logs before retrying.
func (s *Submitter) Submit(
	ctx context.Context,
	to common.Address, value *big.Int, data []byte, gasLimit uint64,
) (*types.Receipt, error) {
	if value == nil {
		value = new(big.Int)
	}

	from := s.signer.Address()
	nonce, err := s.svc.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, err
	}
	gasPrice, err := s.svc.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	if gasLimit == 0 {
		gasLimit, err = s.svc.EstimateGas(ctx, ethereum.CallMsg{
			From:     from,
			To:       &to,
			Value:    value,
			Data:     data,
			GasPrice: gasPrice,
		})
		if err != nil {
			// an estimation refusal is the node simulating a revert.
			return nil, &ContractRevertError{Reason: err.Error()}
		}
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signedTx, err := s.signer.SignTx(ctx, s.chainID, tx)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	if err := s.svc.SendTransaction(ctx, signedTx); err != nil {
		return nil, err
	}
	txHash := signedTx.Hash()
	log.Debugf("submitted tx %s to %s", txHash, to)

	receipt, err := s.waitMined(ctx, txHash)
	if err != nil {
		return nil, err
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return nil, &ContractRevertError{
			TxHash: txHash,
			Reason: s.revertReason(ctx, from, to, value, data, receipt),
		}
	}
	return receipt, nil
}

// EstimateGas estimates the resource cost of a call signed by the
// submitter's account without submitting it.
func (s *Submitter) EstimateGas(
	ctx context.Context, to common.Address, value *big.Int, data []byte,
) (uint64, error) {
	if value == nil {
		value = new(big.Int)
	}
	return s.svc.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.signer.Address(),
		To:    &to,
		Value: value,
		Data:  data,
	})
}

func (s *Submitter) waitMined(
	ctx context.Context, txHash common.Hash,
) (*types.Receipt, error) {
	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	deadline := time.Now().Add(s.confirmationTimeout)
	for {
		receipt, err := s.svc.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if err != ethereum.NotFound {
			// the transaction is already in flight, a failing poll doesn't
			// change its outcome. Keep polling until the window closes so
			// the caller still gets the tx hash to reconcile with.
			log.WithError(err).Debugf("receipt poll failed for tx %s", txHash)
		}

		if time.Now().After(deadline) {
			log.Warnf("confirmation timeout for tx %s", txHash)
			return nil, &ConfirmationTimeoutError{TxHash: txHash}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// revertReason replays the failed call at the block it was included in to
// extract the revert reason. Best effort, some endpoints don't return one.
func (s *Submitter) revertReason(
	ctx context.Context,
	from, to common.Address, value *big.Int, data []byte,
	receipt *types.Receipt,
) string {
	_, err := s.svc.CallContract(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	}, receipt.BlockNumber)
	if err == nil {
		return ""
	}
	return err.Error()
}
