package multisig

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// NonceSource returns the authoritative transaction counter of the given
// multisig account straight from the ledger.
type NonceSource func(ctx context.Context, account common.Address) (uint64, error)

// Sequencer mirrors the transaction counter of multisig accounts and
// serializes nonce issuance per account. The authoritative value is fetched
// once per account; afterwards the mirror advances locally by one per
// committed execution, which avoids the read-then-submit race of re-querying
// the counter under concurrency. The sequencer assumes single-process
// exclusive ownership of nonce issuance for its accounts.
type Sequencer struct {
	source NonceSource

	mtx      sync.Mutex
	accounts map[common.Address]*accountNonce
}

type accountNonce struct {
	mtx    sync.Mutex
	next   uint64
	synced bool
}

// NewSequencer returns a Sequencer backed by the given authoritative source.
func NewSequencer(source NonceSource) *Sequencer {
	return &Sequencer{
		source:   source,
		accounts: make(map[common.Address]*accountNonce),
	}
}

// Do runs fn with the next counter value of the given account while holding
// the account's lock, so that proposal construction and submission are
// strictly serialized per account. The mirrored counter advances only if fn
// returns nil; on failure the same value is reissued to the next caller.
func (s *Sequencer) Do(
	ctx context.Context, account common.Address, fn func(nonce uint64) error,
) error {
	an := s.account(account)

	an.mtx.Lock()
	defer an.mtx.Unlock()

	if !an.synced {
		n, err := s.source(ctx, account)
		if err != nil {
			return err
		}
		an.next = n
		an.synced = true
	}

	if err := fn(an.next); err != nil {
		return err
	}
	an.next++
	return nil
}

// Reset drops the local mirror of the given account so that the next Do
// re-fetches the authoritative counter. Needed after executions this process
// did not perform.
func (s *Sequencer) Reset(account common.Address) {
	an := s.account(account)
	an.mtx.Lock()
	defer an.mtx.Unlock()
	an.synced = false
}

func (s *Sequencer) account(account common.Address) *accountNonce {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	an, ok := s.accounts[account]
	if !ok {
		an = &accountNonce{}
		s.accounts[account] = an
	}
	return an
}
