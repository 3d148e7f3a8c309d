package multisig

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	mtx   sync.Mutex
	next  uint64
	calls int
}

func (c *countingSource) fetch(
	_ context.Context, _ common.Address,
) (uint64, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.calls++
	return c.next, nil
}

func TestSequencerFetchesOnceAndAdvances(t *testing.T) {
	source := &countingSource{next: 5}
	sequencer := NewSequencer(source.fetch)
	account := common.HexToAddress("0x01")

	var issued []uint64
	for i := 0; i < 3; i++ {
		err := sequencer.Do(context.Background(), account, func(nonce uint64) error {
			issued = append(issued, nonce)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	assert.Equal(t, []uint64{5, 6, 7}, issued)
	assert.Equal(t, 1, source.calls)
}

func TestSequencerReissuesNonceOnFailure(t *testing.T) {
	source := &countingSource{next: 9}
	sequencer := NewSequencer(source.fetch)
	account := common.HexToAddress("0x01")

	boom := errors.New("execution reverted")
	err := sequencer.Do(context.Background(), account, func(nonce uint64) error {
		assert.Equal(t, uint64(9), nonce)
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = sequencer.Do(context.Background(), account, func(nonce uint64) error {
		assert.Equal(t, uint64(9), nonce)
		return nil
	})
	require.NoError(t, err)
}

func TestSequencerResetRefetches(t *testing.T) {
	source := &countingSource{next: 2}
	sequencer := NewSequencer(source.fetch)
	account := common.HexToAddress("0x01")

	err := sequencer.Do(context.Background(), account, func(nonce uint64) error {
		return nil
	})
	require.NoError(t, err)

	// an execution performed outside this process advanced the counter.
	source.mtx.Lock()
	source.next = 7
	source.mtx.Unlock()
	sequencer.Reset(account)

	err = sequencer.Do(context.Background(), account, func(nonce uint64) error {
		assert.Equal(t, uint64(7), nonce)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestSequencerPropagatesSourceError(t *testing.T) {
	boom := errors.New("endpoint unavailable")
	sequencer := NewSequencer(
		func(_ context.Context, _ common.Address) (uint64, error) {
			return 0, boom
		},
	)

	err := sequencer.Do(
		context.Background(), common.HexToAddress("0x01"),
		func(nonce uint64) error {
			t.Fatal("must not run without a synced counter")
			return nil
		},
	)
	assert.ErrorIs(t, err, boom)
}

func TestSequencerSerializesConcurrentIssuance(t *testing.T) {
	source := &countingSource{}
	sequencer := NewSequencer(source.fetch)
	account := common.HexToAddress("0x01")

	const goroutines = 16
	var (
		mtx    sync.Mutex
		issued []uint64
		wg     sync.WaitGroup
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			err := sequencer.Do(
				context.Background(), account, func(nonce uint64) error {
					mtx.Lock()
					issued = append(issued, nonce)
					mtx.Unlock()
					return nil
				},
			)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, issued, goroutines)
	sort.Slice(issued, func(i, j int) bool { return issued[i] < issued[j] })
	for i, nonce := range issued {
		assert.Equal(t, uint64(i), nonce)
	}
	assert.Equal(t, 1, source.calls)
}

func TestSequencerTracksAccountsIndependently(t *testing.T) {
	counters := map[common.Address]uint64{
		common.HexToAddress("0x01"): 10,
		common.HexToAddress("0x02"): 20,
	}
	sequencer := NewSequencer(
		func(_ context.Context, account common.Address) (uint64, error) {
			return counters[account], nil
		},
	)

	for account, expected := range counters {
		err := sequencer.Do(
			context.Background(), account, func(nonce uint64) error {
				assert.Equal(t, expected, nonce)
				return nil
			},
		)
		require.NoError(t, err)
	}
}
