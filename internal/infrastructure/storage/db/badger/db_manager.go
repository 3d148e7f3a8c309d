package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/tidelabs/tideth/internal/core/domain"
	"github.com/tidelabs/tideth/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds all the badgerhold stores in a single data structure.
type DbManager struct {
	DepositStore    *badgerhold.Store
	WithdrawalStore *badgerhold.Store
	ExecutionStore  *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. It creates a dedicated
// directory for deposits, withdrawals and executions.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	depositDb, err := createDb(baseDbDir+"/deposits", logger)
	if err != nil {
		return nil, fmt.Errorf("opening deposits db: %w", err)
	}

	withdrawalDb, err := createDb(baseDbDir+"/withdrawals", logger)
	if err != nil {
		return nil, fmt.Errorf("opening withdrawals db: %w", err)
	}

	executionDb, err := createDb(baseDbDir+"/executions", logger)
	if err != nil {
		return nil, fmt.Errorf("opening executions db: %w", err)
	}

	return &DbManager{
		DepositStore:    depositDb,
		WithdrawalStore: withdrawalDb,
		ExecutionStore:  executionDb,
	}, nil
}

func (d *DbManager) DepositRepository() domain.DepositRepository {
	return NewDepositRepositoryImpl(d.DepositStore)
}

func (d *DbManager) WithdrawalRepository() domain.WithdrawalRepository {
	return NewWithdrawalRepositoryImpl(d.WithdrawalStore)
}

func (d *DbManager) ExecutionRepository() domain.ExecutionRepository {
	return NewExecutionRepositoryImpl(d.ExecutionStore)
}

func (d *DbManager) Close() error {
	for _, store := range []*badgerhold.Store{
		d.DepositStore, d.WithdrawalStore, d.ExecutionStore,
	} {
		if err := store.Close(); err != nil {
			return err
		}
	}
	return nil
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}

var _ ports.DbManager = (*DbManager)(nil)
