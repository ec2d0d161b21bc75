package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds all the badgerhold stores in a single data structure.
type DbManager struct {
	AccountStore    *badgerhold.Store
	DescriptorStore *badgerhold.Store
	UnspentStore    *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. It creates a dedicated
// directory for accounts, descriptors and unspents.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	accountDb, err := createDb(filepath.Join(baseDbDir, "account"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening account db: %w", err)
	}

	descriptorDb, err := createDb(filepath.Join(baseDbDir, "descriptor"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening descriptor db: %w", err)
	}

	unspentDb, err := createDb(filepath.Join(baseDbDir, "unspent"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening unspent db: %w", err)
	}

	return &DbManager{
		AccountStore:    accountDb,
		DescriptorStore: descriptorDb,
		UnspentStore:    unspentDb,
	}, nil
}

// Close closes all the stores.
func (d *DbManager) Close() error {
	for _, store := range []*badgerhold.Store{
		d.AccountStore, d.DescriptorStore, d.UnspentStore,
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
