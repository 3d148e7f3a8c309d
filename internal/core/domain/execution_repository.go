package domain

import "context"

// ExecutionRepository is the abstraction for any kind of database intended to
// persist ExecutionSuccess records. Reconciling these against the multisig
// transaction hashes we submitted is how an ambiguous confirmation timeout is
// resolved.
type ExecutionRepository interface {
	// AddExecutions adds the provided records to the repository and returns
	// the number of those actually stored. Those already existing won't be
	// re-added.
	AddExecutions(ctx context.Context, executions []ExecutionSuccess) (int, error)
	// GetExecutionByInnerTxHash returns the record whose executed multisig
	// transaction hash matches the given one, or nil if none is found.
	GetExecutionByInnerTxHash(
		ctx context.Context, innerTxHash string,
	) (*ExecutionSuccess, error)
	// GetAllExecutions returns all records in the repository.
	GetAllExecutions(ctx context.Context, page *Page) ([]ExecutionSuccess, error)
}
