package domain

import "context"

// WithdrawalRepository is the abstraction for any kind of database intended
// to persist Withdrawals.
type WithdrawalRepository interface {
	// AddWithdrawals adds the provided withdrawals to the repository and
	// returns the number of those actually stored. Those already existing
	// won't be re-added.
	AddWithdrawals(ctx context.Context, withdrawals []Withdrawal) (int, error)
	// GetWithdrawalsForAccount returns the withdrawals with the given
	// 20-byte destination account.
	GetWithdrawalsForAccount(
		ctx context.Context, account string, page *Page,
	) ([]Withdrawal, error)
	// GetWithdrawalsForAsset returns the withdrawals of the given asset.
	GetWithdrawalsForAsset(
		ctx context.Context, asset string, page *Page,
	) ([]Withdrawal, error)
	// GetAllWithdrawals returns all withdrawals in the repository.
	GetAllWithdrawals(ctx context.Context, page *Page) ([]Withdrawal, error)
}
