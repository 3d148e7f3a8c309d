package domain

import "context"

// DepositRepository is the abstraction for any kind of database intended to
// persist Deposits.
type DepositRepository interface {
	// AddDeposits adds the provided deposits to the repository and returns
	// the number of those actually stored. Those already existing won't be
	// re-added.
	AddDeposits(ctx context.Context, deposits []Deposit) (int, error)
	// GetDepositsForAccount returns the deposits with the given 32-byte
	// destination account identifier.
	GetDepositsForAccount(
		ctx context.Context, account string, page *Page,
	) ([]Deposit, error)
	// GetDepositsForAsset returns the deposits of the given asset.
	GetDepositsForAsset(
		ctx context.Context, asset string, page *Page,
	) ([]Deposit, error)
	// GetAllDeposits returns all deposits in the repository.
	GetAllDeposits(ctx context.Context, page *Page) ([]Deposit, error)
}
