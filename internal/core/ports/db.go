package ports

import "github.com/tidelabs/tideth/internal/core/domain"

// DbManager interface defines the methods to access the repositories of the
// deposit/withdrawal ledgers.
type DbManager interface {
	DepositRepository() domain.DepositRepository
	WithdrawalRepository() domain.WithdrawalRepository
	ExecutionRepository() domain.ExecutionRepository

	Close() error
}
