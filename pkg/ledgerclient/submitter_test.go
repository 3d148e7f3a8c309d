package ledgerclient

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	Service

	chainID     *big.Int
	estimateErr error
	receipts    map[common.Hash]*types.Receipt
	callErr     error
	// flakyPolls makes that many receipt polls fail with a transport error
	// before the lookup works again.
	flakyPolls int
	// pendingStatus makes SendTransaction register a receipt for whatever
	// tx hash gets submitted, since the hash is only known after signing.
	pendingStatus *uint64

	sent []*types.Transaction
}

func newFakeService() *fakeService {
	return &fakeService{
		chainID:  big.NewInt(1337),
		receipts: map[common.Hash]*types.Receipt{},
	}
}

func (f *fakeService) ChainID(ctx context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeService) PendingNonceAt(
	ctx context.Context, address common.Address,
) (uint64, error) {
	return 4, nil
}

func (f *fakeService) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

func (f *fakeService) EstimateGas(
	ctx context.Context, msg ethereum.CallMsg,
) (uint64, error) {
	if f.estimateErr != nil {
		return 0, f.estimateErr
	}
	return 21000, nil
}

func (f *fakeService) SendTransaction(
	ctx context.Context, tx *types.Transaction,
) error {
	f.sent = append(f.sent, tx)
	if _, ok := f.receipts[tx.Hash()]; !ok && f.pendingStatus != nil {
		f.receipts[tx.Hash()] = &types.Receipt{
			TxHash:      tx.Hash(),
			Status:      *f.pendingStatus,
			GasUsed:     21000,
			BlockNumber: big.NewInt(10),
		}
	}
	return nil
}

func (f *fakeService) TransactionReceipt(
	ctx context.Context, txHash common.Hash,
) (*types.Receipt, error) {
	if f.flakyPolls > 0 {
		f.flakyPolls--
		return nil, &TransportError{
			Op:  "transaction_receipt",
			Err: errors.New("connection reset"),
		}
	}
	receipt, ok := f.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (f *fakeService) CallContract(
	ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int,
) ([]byte, error) {
	return nil, f.callErr
}

type testSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newTestSigner(t *testing.T) *testSigner {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &testSigner{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

func (s *testSigner) Address() common.Address {
	return s.address
}

func (s *testSigner) SignTx(
	ctx context.Context, chainID *big.Int, tx *types.Transaction,
) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}

func TestSubmitWaitsForInclusion(t *testing.T) {
	svc := newFakeService()
	status := types.ReceiptStatusSuccessful
	svc.pendingStatus = &status

	submitter, err := NewSubmitter(context.Background(), SubmitterOpts{
		Service:         svc,
		Signer:          newTestSigner(t),
		PollingInterval: time.Millisecond,
	})
	require.NoError(t, err)

	receipt, err := submitter.Submit(
		context.Background(), common.HexToAddress("0x01"), nil, []byte{0x01}, 0,
	)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, svc.sent, 1)
	assert.Equal(t, svc.sent[0].Hash(), receipt.TxHash)
	assert.Equal(t, uint64(4), svc.sent[0].Nonce())
	assert.Equal(t, uint64(21000), svc.sent[0].Gas())
}

func TestSubmitMapsEstimateRefusalToRevert(t *testing.T) {
	svc := newFakeService()
	svc.estimateErr = errors.New("execution reverted: not owner")

	submitter, err := NewSubmitter(context.Background(), SubmitterOpts{
		Service: svc,
		Signer:  newTestSigner(t),
	})
	require.NoError(t, err)

	_, err = submitter.Submit(
		context.Background(), common.HexToAddress("0x01"), nil, nil, 0,
	)

	var revertErr *ContractRevertError
	require.ErrorAs(t, err, &revertErr)
	assert.Contains(t, revertErr.Reason, "not owner")
	assert.Empty(t, svc.sent)
}

func TestSubmitMapsFailedReceiptToRevert(t *testing.T) {
	svc := newFakeService()
	status := types.ReceiptStatusFailed
	svc.pendingStatus = &status
	svc.callErr = errors.New("execution reverted: balance too low")

	submitter, err := NewSubmitter(context.Background(), SubmitterOpts{
		Service:         svc,
		Signer:          newTestSigner(t),
		PollingInterval: time.Millisecond,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(
		context.Background(), common.HexToAddress("0x01"), nil, nil, 0,
	)

	var revertErr *ContractRevertError
	require.ErrorAs(t, err, &revertErr)
	assert.Contains(t, revertErr.Reason, "balance too low")
	assert.NotEqual(t, common.Hash{}, revertErr.TxHash)
}

func TestSubmitRidesOutTransientPollFailures(t *testing.T) {
	svc := newFakeService()
	status := types.ReceiptStatusSuccessful
	svc.pendingStatus = &status
	svc.flakyPolls = 3

	submitter, err := NewSubmitter(context.Background(), SubmitterOpts{
		Service:         svc,
		Signer:          newTestSigner(t),
		PollingInterval: time.Millisecond,
	})
	require.NoError(t, err)

	receipt, err := submitter.Submit(
		context.Background(), common.HexToAddress("0x01"), nil, []byte{0x01}, 0,
	)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, svc.sent, 1)
	assert.Equal(t, svc.sent[0].Hash(), receipt.TxHash)
	assert.Zero(t, svc.flakyPolls)
}

func TestSubmitKeepsTxHashWhenPollingNeverRecovers(t *testing.T) {
	svc := newFakeService()
	// every poll inside the window fails at the transport level.
	svc.flakyPolls = 1 << 20

	submitter, err := NewSubmitter(context.Background(), SubmitterOpts{
		Service:             svc,
		Signer:              newTestSigner(t),
		ConfirmationTimeout: 10 * time.Millisecond,
		PollingInterval:     time.Millisecond,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(
		context.Background(), common.HexToAddress("0x01"), nil, nil, 21000,
	)

	var timeoutErr *ConfirmationTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Len(t, svc.sent, 1)
	assert.Equal(t, svc.sent[0].Hash(), timeoutErr.TxHash)
}

func TestSubmitTimesOutWithAmbiguousOutcome(t *testing.T) {
	svc := newFakeService()
	// no receipt ever shows up.

	submitter, err := NewSubmitter(context.Background(), SubmitterOpts{
		Service:             svc,
		Signer:              newTestSigner(t),
		ConfirmationTimeout: 10 * time.Millisecond,
		PollingInterval:     time.Millisecond,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(
		context.Background(), common.HexToAddress("0x01"), nil, nil, 21000,
	)

	var timeoutErr *ConfirmationTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Len(t, svc.sent, 1)
	assert.Equal(t, svc.sent[0].Hash(), timeoutErr.TxHash)
}
