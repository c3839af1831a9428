package dataset

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

type badgerKV struct {
	db *badger.DB
}

// OpenBadger badger 디렉터리에 저장
func OpenBadger(dir string) (Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "badger 열기 실패 %s", dir)
	}
	return &kvStore{kv: &badgerKV{db: db}, name: "badger"}, nil
}

type badgerBatch struct {
	wb *badger.WriteBatch
}

func (w badgerBatch) set(key, value []byte) error { return w.wb.Set(key, value) }
func (w badgerBatch) delete(key []byte) error     { return w.wb.Delete(key) }

func (s *badgerKV) update(fn func(w batchWriter) error) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	if err := fn(badgerBatch{wb: wb}); err != nil {
		return err
	}
	return wb.Flush()
}

func (s *badgerKV) get(key []byte, fn func(value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(fn)
	})
}

func (s *badgerKV) keys(prefix []byte, fn func(key []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := fn(it.Item().Key()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *badgerKV) close() error {
	return s.db.Close()
}
