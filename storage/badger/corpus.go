package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/baytlab/bayt/core"
	"github.com/baytlab/bayt/storage"
)

// CorpusRepository implements storage.CorpusRepository for BadgerDB.
//
// Every record is stored twice: once under its ID for point lookups, and
// once referenced by a sequence-assigned ordinal so AllRecords can replay
// the corpus in ingestion order.
type CorpusRepository struct {
	backend *Backend
	ordSeq  *badger.Sequence
}

var _ storage.CorpusRepository = (*CorpusRepository)(nil)

// NewCorpusRepository creates a new CorpusRepository.
func NewCorpusRepository(backend *Backend) (*CorpusRepository, error) {
	ordSeq, err := backend.GetSequence(verseOrdinalSeq)
	if err != nil {
		return nil, err
	}

	return &CorpusRepository{
		backend: backend,
		ordSeq:  ordSeq,
	}, nil
}

// Close releases the ordinal sequence.
func (r *CorpusRepository) Close() error {
	return r.ordSeq.Release()
}

// AddRecords adds records to storage, preserving the call order.
func (r *CorpusRepository) AddRecords(ctx context.Context, records ...*core.Record) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeRecordKey(record.ID)

			_, err := tx.Get(key)
			if err == nil {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, record.ID)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
				return err
			}

			ordinal, err := r.ordSeq.Next()
			if err != nil {
				return err
			}
			if err := tx.Set(makeOrdinalKey(ordinal), storage.MarshalID(record.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecord retrieves a single record by ID.
func (r *CorpusRepository) GetRecord(ctx context.Context, id core.ID) (*core.Record, error) {
	var record *core.Record

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = readRecord(tx, makeRecordKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	return record, nil
}

// AllRecords retrieves the whole corpus in ingestion order.
func (r *CorpusRepository) AllRecords(ctx context.Context) ([]*core.Record, error) {
	var records []*core.Record

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(verseOrdinalPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			record, err := readRecord(tx, makeRecordKey(id))
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("%w: %s (dangling ordinal entry)", storage.ErrNotFound, id)
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Count returns the number of stored records.
func (r *CorpusRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(verseRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteAll removes every stored record and the ordinal index.
func (r *CorpusRepository) DeleteAll(ctx context.Context) error {
	return r.backend.DropPrefixes(
		[]byte(verseRecordPrefix+":"),
		[]byte(verseOrdinalPrefix+":"),
	)
}

// readRecord reads and deserializes a record, returning nil when the key
// does not exist.
func readRecord(tx *badger.Txn, key []byte) (*core.Record, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.Record
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
