package application

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/pkg/ledgerclient"
)

// HistoryService reads the stored transfer records back. Confirmation depths
// are never stored, they are recomputed against the chain height sampled once
// per request, so two calls may report different depths for the same record.
type HistoryService interface {
	ListDeposits(
		ctx context.Context, page *domain.Page,
	) ([]DepositInfo, error)
	// ListDepositsForAccount filters by the 32-byte destination account
	// identifier, 0x-prefixed.
	ListDepositsForAccount(
		ctx context.Context, account string, page *domain.Page,
	) ([]DepositInfo, error)
	ListDepositsForAsset(
		ctx context.Context, asset string, page *domain.Page,
	) ([]DepositInfo, error)
	ListWithdrawals(
		ctx context.Context, page *domain.Page,
	) ([]WithdrawalInfo, error)
	// ListWithdrawalsForAccount filters by the native 20-byte destination
	// address.
	ListWithdrawalsForAccount(
		ctx context.Context, account string, page *domain.Page,
	) ([]WithdrawalInfo, error)
	ListWithdrawalsForAsset(
		ctx context.Context, asset string, page *domain.Page,
	) ([]WithdrawalInfo, error)
	ListExecutions(
		ctx context.Context, page *domain.Page,
	) ([]ExecutionInfo, error)
	// GetExecutionByInnerTxHash looks an execution up by the digest the
	// owners signed, nil when not found.
	GetExecutionByInnerTxHash(
		ctx context.Context, innerTxHash string,
	) (*ExecutionInfo, error)
}

type historyService struct {
	svc                  ledgerclient.Service
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
	executionRepository  domain.ExecutionRepository
}

// NewHistoryService returns a HistoryService reading from the given stores
// and sampling chain heights from the given ledger service.
func NewHistoryService(
	svc ledgerclient.Service,
	depositRepository domain.DepositRepository,
	withdrawalRepository domain.WithdrawalRepository,
	executionRepository domain.ExecutionRepository,
) HistoryService {
	return &historyService{
		svc:                  svc,
		depositRepository:    depositRepository,
		withdrawalRepository: withdrawalRepository,
		executionRepository:  executionRepository,
	}
}

func (h *historyService) ListDeposits(
	ctx context.Context, page *domain.Page,
) ([]DepositInfo, error) {
	deposits, err := h.depositRepository.GetAllDeposits(ctx, page)
	if err != nil {
		return nil, err
	}
	return h.depositInfos(ctx, deposits)
}

func (h *historyService) ListDepositsForAccount(
	ctx context.Context, account string, page *domain.Page,
) ([]DepositInfo, error) {
	normalized, ok := normalizeAccountID(account)
	if !ok {
		return nil, domain.ErrInvalidAccount
	}
	deposits, err := h.depositRepository.GetDepositsForAccount(
		ctx, normalized, page,
	)
	if err != nil {
		return nil, err
	}
	return h.depositInfos(ctx, deposits)
}

func (h *historyService) ListDepositsForAsset(
	ctx context.Context, asset string, page *domain.Page,
) ([]DepositInfo, error) {
	normalized, ok := normalizeAddress(asset)
	if !ok {
		return nil, ErrInvalidAsset
	}
	deposits, err := h.depositRepository.GetDepositsForAsset(
		ctx, normalized, page,
	)
	if err != nil {
		return nil, err
	}
	return h.depositInfos(ctx, deposits)
}

func (h *historyService) ListWithdrawals(
	ctx context.Context, page *domain.Page,
) ([]WithdrawalInfo, error) {
	withdrawals, err := h.withdrawalRepository.GetAllWithdrawals(ctx, page)
	if err != nil {
		return nil, err
	}
	return h.withdrawalInfos(ctx, withdrawals)
}

func (h *historyService) ListWithdrawalsForAccount(
	ctx context.Context, account string, page *domain.Page,
) ([]WithdrawalInfo, error) {
	normalized, ok := normalizeAddress(account)
	if !ok {
		return nil, domain.ErrInvalidAccount
	}
	withdrawals, err := h.withdrawalRepository.GetWithdrawalsForAccount(
		ctx, normalized, page,
	)
	if err != nil {
		return nil, err
	}
	return h.withdrawalInfos(ctx, withdrawals)
}

func (h *historyService) ListWithdrawalsForAsset(
	ctx context.Context, asset string, page *domain.Page,
) ([]WithdrawalInfo, error) {
	normalized, ok := normalizeAddress(asset)
	if !ok {
		return nil, ErrInvalidAsset
	}
	withdrawals, err := h.withdrawalRepository.GetWithdrawalsForAsset(
		ctx, normalized, page,
	)
	if err != nil {
		return nil, err
	}
	return h.withdrawalInfos(ctx, withdrawals)
}

func (h *historyService) ListExecutions(
	ctx context.Context, page *domain.Page,
) ([]ExecutionInfo, error) {
	executions, err := h.executionRepository.GetAllExecutions(ctx, page)
	if err != nil {
		return nil, err
	}

	height, err := h.svc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]ExecutionInfo, 0, len(executions))
	for _, e := range executions {
		infos = append(infos, ExecutionInfo{
			ExecutionSuccess: e,
			Confirmations:    confirmations(height, e.BlockHeight),
		})
	}
	return infos, nil
}

func (h *historyService) GetExecutionByInnerTxHash(
	ctx context.Context, innerTxHash string,
) (*ExecutionInfo, error) {
	execution, err := h.executionRepository.GetExecutionByInnerTxHash(
		ctx, common.HexToHash(innerTxHash).Hex(),
	)
	if err != nil {
		return nil, err
	}
	if execution == nil {
		return nil, nil
	}

	height, err := h.svc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	return &ExecutionInfo{
		ExecutionSuccess: *execution,
		Confirmations:    confirmations(height, execution.BlockHeight),
	}, nil
}

func (h *historyService) depositInfos(
	ctx context.Context, deposits []domain.Deposit,
) ([]DepositInfo, error) {
	height, err := h.svc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]DepositInfo, 0, len(deposits))
	for _, d := range deposits {
		infos = append(infos, DepositInfo{
			Deposit:       d,
			Confirmations: confirmations(height, d.BlockHeight),
		})
	}
	return infos, nil
}

func (h *historyService) withdrawalInfos(
	ctx context.Context, withdrawals []domain.Withdrawal,
) ([]WithdrawalInfo, error) {
	height, err := h.svc.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]WithdrawalInfo, 0, len(withdrawals))
	for _, w := range withdrawals {
		infos = append(infos, WithdrawalInfo{
			Withdrawal:    w,
			Confirmations: confirmations(height, w.BlockHeight),
		})
	}
	return infos, nil
}

// confirmations returns the depth of a record at the given chain height,
// zero when the height lags behind the record.
func confirmations(height, blockHeight uint64) uint64 {
	if height < blockHeight {
		return 0
	}
	return height - blockHeight
}
